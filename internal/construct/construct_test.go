package construct_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
)

func scenario() *knapsack.Instance {
	return knapsack.MustInstance(10, []int{60, 100, 120, 80}, []int{10, 20, 30, 15})
}

func checkResult(t *testing.T, inst *knapsack.Instance, res construct.Result) {
	t.Helper()
	require.Len(t, res.Solution, inst.Len())
	require.LessOrEqual(t, res.Weight, inst.Capacity())
	p, w := knapsack.Totals(res.Solution, inst)
	require.Equal(t, p, res.Profit)
	require.Equal(t, w, res.Weight)
}

// ConstructorSuite проверяет общие свойства всех конструкторов.
type ConstructorSuite struct {
	suite.Suite
	ctors []construct.Constructor
}

func (s *ConstructorSuite) SetupTest() {
	rng := rand.New(rand.NewSource(11))
	r, err := construct.NewRandom(0.5, false, rng)
	s.Require().NoError(err)
	sr, err := construct.NewRandom(0.7, true, rng)
	s.Require().NoError(err)
	g0, err := construct.NewGreedyRandomized(0, rng)
	s.Require().NoError(err)
	g3, err := construct.NewGreedyRandomized(0.3, rng)
	s.Require().NoError(err)
	g1, err := construct.NewGreedyRandomized(1, rng)
	s.Require().NoError(err)
	s.ctors = []construct.Constructor{r, sr, construct.NewRatioGreedy(), g0, g3, g1}
}

func (s *ConstructorSuite) TestNeverExceedsCapacity() {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 50; trial++ {
		inst := knapsack.RandomInstance(1+rng.Intn(40), 0, 60, rng.Float64(), rng)
		for _, c := range s.ctors {
			checkResult(s.T(), inst, c.Construct(inst, time.Time{}))
		}
	}
}

func (s *ConstructorSuite) TestExpiredDeadlineYieldsEmpty() {
	inst := scenario()
	past := time.Now().Add(-time.Second)
	for _, c := range s.ctors {
		res := c.Construct(inst, past)
		s.Require().Zero(res.Solution.Count(), c.Name())
		s.Require().Zero(res.Weight)
		s.Require().Zero(res.Profit)
	}
}

func TestGreedyRandomized_DeadlineMidConstruction(t *testing.T) {
	// Полное построение требует тысяч раундов по O(n log n) каждый.
	inst := knapsack.RandomInstance(4000, 1, 99, 0.5, rand.New(rand.NewSource(21)))

	for _, budget := range []time.Duration{5 * time.Millisecond, 20 * time.Millisecond, 100 * time.Millisecond} {
		c, err := construct.NewGreedyRandomized(0.3, rand.New(rand.NewSource(4)))
		require.NoError(t, err)

		res := c.Construct(inst, time.Now().Add(budget))
		checkResult(t, inst, res)
		if res.Solution.Count() == 0 {
			continue
		}

		// построение прервано: хотя бы один невыбранный предмет ещё помещается
		fits := false
		for i, in := range res.Solution {
			if !in && inst.Weight(i) <= inst.Capacity()-res.Weight {
				fits = true
				break
			}
		}
		require.True(t, fits, "budget %s", budget)
		require.Positive(t, res.Profit)
		return
	}
	t.Fatal("no budget produced a partial solution")
}

func (s *ConstructorSuite) TestEmptyInstance() {
	inst := knapsack.MustInstance(0, nil, nil)
	for _, c := range s.ctors {
		res := c.Construct(inst, time.Time{})
		s.Require().Empty(res.Solution)
	}
}

func (s *ConstructorSuite) TestOversizedItemsExcluded() {
	inst := knapsack.MustInstance(5, []int{100, 1}, []int{6, 5})
	for _, c := range s.ctors {
		res := c.Construct(inst, time.Time{})
		s.Require().False(res.Solution[0], c.Name())
	}
}

func TestConstructorSuite(t *testing.T) {
	suite.Run(t, new(ConstructorSuite))
}

func TestRatioGreedy_Scenario(t *testing.T) {
	inst := scenario()
	res := construct.NewRatioGreedy().Construct(inst, time.Time{})
	require.Equal(t, knapsack.Solution{true, false, false, false}, res.Solution)
	require.Equal(t, 60, res.Profit)
	require.Equal(t, 10, res.Weight)
}

func TestRatioOrder_StableAndZeroWeight(t *testing.T) {
	// 3: вес 0 → бесконечность; 0 и 2 равны (2.0), порядок по индексу.
	inst := knapsack.MustInstance(100, []int{4, 1, 6, 7, 0}, []int{2, 1, 3, 0, 0})
	require.Equal(t, []int{3, 0, 2, 1, 4}, construct.RatioOrder(inst))

	require.Equal(t, []int{0, 3, 1, 2}, construct.RatioOrder(scenario()))
}

func TestRandom_ScenarioNeverOverweight(t *testing.T) {
	inst := scenario()
	for seed := int64(0); seed < 200; seed++ {
		c, err := construct.NewRandom(0.5, false, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		res := c.Construct(inst, time.Time{})
		require.LessOrEqual(t, res.Weight, 10)
		require.False(t, res.Solution[1] || res.Solution[2] || res.Solution[3])
	}
}

func TestRandom_Probabilities(t *testing.T) {
	inst := knapsack.MustInstance(1000, []int{1, 2, 3}, []int{1, 1, 1})

	all, err := construct.NewRandom(1, false, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, 3, all.Construct(inst, time.Time{}).Solution.Count())

	none, err := construct.NewRandom(0, true, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Zero(t, none.Construct(inst, time.Time{}).Solution.Count())

	_, err = construct.NewRandom(1.5, false, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	_, err = construct.NewRandom(0.5, false, nil)
	require.ErrorIs(t, err, construct.ErrNilRand)
}

func TestGreedyRandomized_AlphaZeroMatchesGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for trial := 0; trial < 100; trial++ {
		inst := knapsack.RandomInstance(1+rng.Intn(30), 0, 40, rng.Float64(), rng)
		g, err := construct.NewGreedyRandomized(0, rng)
		require.NoError(t, err)
		require.Equal(t,
			construct.NewRatioGreedy().Construct(inst, time.Time{}).Solution,
			g.Construct(inst, time.Time{}).Solution,
		)
	}
}

func TestGreedyRandomized_AlphaOneReachesAllCandidates(t *testing.T) {
	// Все предметы помещаются только по одному: первый выбор определяет решение.
	inst := knapsack.MustInstance(3, []int{9, 5, 1}, []int{3, 3, 3})
	seen := map[int]bool{}
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 300; i++ {
		g, err := construct.NewGreedyRandomized(1, rng)
		require.NoError(t, err)
		res := g.Construct(inst, time.Time{})
		require.Equal(t, 1, res.Solution.Count())
		seen[res.Solution.Items()[0]] = true
	}
	require.Len(t, seen, 3)
}

func TestRCLSize(t *testing.T) {
	require.Equal(t, 1, construct.RCLSize(0, 10))
	require.Equal(t, 10, construct.RCLSize(1, 10))
	require.Equal(t, 3, construct.RCLSize(0.1, 30))
	require.Equal(t, 4, construct.RCLSize(0.12, 30))
	require.Equal(t, 1, construct.RCLSize(0.01, 5))
	require.Equal(t, 0, construct.RCLSize(0.5, 0))

	// значения чуть выше целого округляются вверх
	require.Equal(t, 2, construct.RCLSize(0.5+1e-12, 2))
	require.Equal(t, 1, construct.RCLSize(0.12, 4))
	for m := 1; m <= 500; m++ {
		for i := 0; i <= 100; i++ {
			require.Equal(t, max(1, (i*m+99)/100), construct.RCLSize(float64(i)/100, m), "alpha=%d%% m=%d", i, m)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, construct.DefaultConfig().Validate())
	require.NoError(t, construct.ShuffledRandomConfig().Validate())

	bad := construct.DefaultConfig()
	bad.Strategy = "beam"
	require.Error(t, bad.Validate())

	bad = construct.DefaultConfig()
	bad.Alpha = -0.1
	require.Error(t, bad.Validate())

	bad = construct.DefaultConfig()
	bad.TimeLimit = -time.Second
	require.Error(t, bad.Validate())
}

func TestSolver_Solve(t *testing.T) {
	cfg := construct.DefaultConfig()
	cfg.Strategy = construct.StrategyGreedy
	s, err := construct.NewSolver(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), scenario())
	require.NoError(t, err)
	require.Equal(t, 60, res.Profit)
	require.Equal(t, 10, res.Weight)
	require.Equal(t, "greedy", res.Meta["strategy"])

	_, err = construct.NewSolver(cfg, nil)
	require.NoError(t, err, "greedy does not need a random source")

	cfg.Strategy = construct.StrategyRandom
	_, err = construct.NewSolver(cfg, nil)
	require.ErrorIs(t, err, construct.ErrNilRand)
}

func TestDeadline(t *testing.T) {
	require.True(t, construct.Deadline(context.Background(), 0).IsZero())

	d := construct.Deadline(context.Background(), time.Hour)
	require.WithinDuration(t, time.Now().Add(time.Hour), d, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	d = construct.Deadline(ctx, time.Hour)
	require.WithinDuration(t, time.Now(), d, time.Minute)
}
