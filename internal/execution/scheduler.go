package execution

// Scheduler assigns suite indices to workers
type Scheduler interface {
	Schedule(count int, workerCount int) [][]int
}

// RoundRobinScheduler deals suites to workers like cards: suite i goes to
// worker i % workerCount.
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule returns one slice of suite indices per worker. Every worker gets a
// non-nil slice, possibly empty.
func (s *RoundRobinScheduler) Schedule(count int, workerCount int) [][]int {
	workerCount = max(workerCount, 1)

	distribution := make([][]int, workerCount)
	for w := range distribution {
		distribution[w] = make([]int, 0, count/workerCount+1)
	}
	for i := range count {
		distribution[i%workerCount] = append(distribution[i%workerCount], i)
	}
	return distribution
}
