package outline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/timeutil"
)

// Options control parsing.
type Options struct {
	// Marker introduces day headers, DefaultMarker when empty.
	Marker string
	// DateFormat is the preferred YYYY/MM/DD style pattern for headers.
	DateFormat string
	// Now anchors relative keywords and the today flag.
	Now time.Time
	// NewID generates task ids, uuid.NewString when nil.
	NewID func() string
}

// open is an entry of the ancestor stack. level is the raw indentation level
// of the source line, which may be deeper than the task's normalised level.
type open struct {
	level int
	task  *timeline.Task
}

// Parse builds a Document from timeline text in a single forward pass.
// Lines before the first header are ignored. Nothing in the input is fatal;
// unrecognised lines inside a day are recorded as anomalies.
func Parse(text string, opts Options) *timeline.Document {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	doc := &timeline.Document{}
	var (
		day   *timeline.Day
		stack []open
	)

	for n, raw := range strings.Split(text, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		l := Classify(line, opts.Marker)

		if l.Kind == KindHeader {
			r := timeutil.Resolve(l.Text, opts.Now, opts.DateFormat)
			day = &timeline.Day{
				Key:      r.Key,
				Display:  r.Display,
				Resolved: r.Resolved,
				IsToday:  timeutil.IsToday(r.Key, opts.Now),
				Tasks:    []*timeline.Task{},
			}
			doc.Days = append(doc.Days, day)
			stack = stack[:0]
			continue
		}

		if day == nil {
			continue
		}

		switch l.Kind {
		case KindCheckbox, KindBullet:
		default:
			if strings.TrimSpace(line) != "" {
				doc.Anomalies = append(doc.Anomalies, timeline.Anomaly{
					Line:   n + 1,
					Text:   line,
					Reason: "not a task or bullet",
				})
			}
			continue
		}

		level := l.Level()
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}

		task := timeline.NewTask(opts.NewID(), l.Text, l.Kind == KindCheckbox)
		task.Completed = l.Completed
		task.DayKey = day.Key

		if level == 0 || len(stack) == 0 {
			task.Level = 0
			day.Tasks = append(day.Tasks, task)
		} else {
			parent := stack[len(stack)-1].task
			task.Level = parent.Level + 1
			parent.Subtasks = append(parent.Subtasks, task)
		}
		stack = append(stack, open{level: level, task: task})
	}

	return doc
}
