package knapsack

import (
	"fmt"
	"io"
)

// WriteReport печатает выбранные предметы (нумерация с 1) и итоговые вес и прибыль.
func WriteReport(w io.Writer, inst *Instance, s Solution) error {
	if err := ValidateSolution(s, inst.Len()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Items selected:"); err != nil {
		return err
	}
	for _, i := range s.Items() {
		if _, err := fmt.Fprintf(w, "Item %d - Profit: %d, Weight: %d\n", i+1, inst.Profit(i), inst.Weight(i)); err != nil {
			return err
		}
	}
	ev := Evaluate(s, inst)
	if _, err := fmt.Fprintf(w, "Total weight: %d\n", ev.Weight); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total Profit: %d\n", ev.Profit)
	return err
}
