package grasp_test

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"knapsack/internal/grasp"
	"knapsack/internal/knapsack"
)

func ExampleRun() {
	inst := knapsack.MustInstance(10, []int{60, 100, 120, 80}, []int{10, 20, 30, 15})
	sol, profit, err := grasp.Run(context.Background(), inst, 10, 0.3, time.Second, rand.New(rand.NewSource(1)))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sol.Items(), profit)
	// Output:
	// [0] 60
}
