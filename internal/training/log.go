package training

// timeLayout is the timestamp format used in logs and progress entries.
const timeLayout = "2006-01-02T15:04:05"

// LogEntry summarizes one finished training session.
type LogEntry struct {
	Started   string `yaml:"started" json:"started"`
	Items     int    `yaml:"items" json:"items"`
	Correct   int    `yaml:"correct" json:"correct"`
	Mode      string `yaml:"mode" json:"mode"`
	Direction string `yaml:"direction" json:"direction"`
}

// WrongAnswer records one strict-grading miss for post-exam review.
type WrongAnswer struct {
	Prompt  string `yaml:"prompt" json:"prompt"`
	Given   string `yaml:"given" json:"given"`
	Correct string `yaml:"correct" json:"correct"`
}

// ExamLogEntry summarizes one finished exam.
type ExamLogEntry struct {
	Started   string        `yaml:"started" json:"started"`
	Topic     string        `yaml:"topic" json:"topic"`
	Direction string        `yaml:"direction" json:"direction"`
	Total     int           `yaml:"total" json:"total"`
	Correct   int           `yaml:"correct" json:"correct"`
	Grade     int           `yaml:"grade" json:"grade"`
	Wrong     []WrongAnswer `yaml:"wrong,omitempty" json:"wrong,omitempty"`
}

// DayCounts buckets sessions of one calendar day by mode.
type DayCounts struct {
	Introduce int
	Review    int
}

// CountsByDay aggregates the training log per calendar day. Sessions of
// unknown modes count as review.
func CountsByDay(entries []LogEntry) map[string]DayCounts {
	counts := make(map[string]DayCounts)
	for _, e := range entries {
		if len(e.Started) < 10 {
			continue
		}
		day := e.Started[:10]
		c := counts[day]
		if e.Mode == string(ModeIntroduce) {
			c.Introduce++
		} else {
			c.Review++
		}
		counts[day] = c
	}
	return counts
}
