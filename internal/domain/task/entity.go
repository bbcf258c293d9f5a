package task

type Task struct {
	ID        string
	Title     string
	TimeSpent int // accumulated minutes across closed time entries
}
