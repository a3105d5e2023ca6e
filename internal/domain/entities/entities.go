package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrFolderNotFound       = errors.New("folder not found")
	ErrNoteNotFound         = errors.New("note not found")
	ErrTodoNotFound         = errors.New("todo not found")
	ErrSubtaskNotFound      = errors.New("subtask not found")
	ErrTimetableNotFound    = errors.New("timetable entry not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInvalidWeekday       = errors.New("invalid weekday")
	ErrInvalidTimeFormat    = errors.New("time must be formatted as HH:MM")
	ErrInvalidTimeRange     = errors.New("start time must be before end time")
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrEmptyContent         = errors.New("no content")
	ErrNoVisionModel        = errors.New("only gemini models support image uploads")
)

// Weekday is the day name used by the timetable, e.g. "Monday".
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the days in timetable column order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday accepts a day name in any case.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", ErrInvalidWeekday
}

// WeekdayOf converts a time.Weekday into the timetable's day name.
func WeekdayOf(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekdays[int(d)-1]
}

// Index returns the column position of the day (Monday = 0), or -1.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// TimeWeekday converts back to the standard library weekday.
func (d Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((d.Index() + 1) % 7)
}

// ValidClockTime reports whether s is a zero-padded 24-hour HH:MM time.
func ValidClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour < 24 && minute < 60
}

// Folder groups notes
type Folder struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	NoteCount int       `json:"note_count" db:"note_count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Note is a markdown study note
type Note struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	FolderID  *int      `json:"folder_id" db:"folder_id"`
	ModelUsed *string   `json:"model_used" db:"model_used"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Markdown returns the note as a standalone markdown document.
func (n *Note) Markdown() string {
	return "# " + n.Title + "\n\n" + n.Content
}

// TimetableEntry is one weekly class occupying [StartTime, EndTime) on Day.
type TimetableEntry struct {
	ID        int       `json:"id" db:"id"`
	Day       Weekday   `json:"day" db:"day"`
	StartTime string    `json:"start_time" db:"start_time"`
	EndTime   string    `json:"end_time" db:"end_time"`
	Subject   string    `json:"subject" db:"subject"`
	Type      string    `json:"type" db:"type"`
	Location  string    `json:"location" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks the day, both clock times and their order.
func (e *TimetableEntry) Validate() error {
	day, err := ParseWeekday(string(e.Day))
	if err != nil {
		return err
	}
	e.Day = day

	if !ValidClockTime(e.StartTime) || !ValidClockTime(e.EndTime) {
		return ErrInvalidTimeFormat
	}
	if e.StartTime >= e.EndTime {
		return ErrInvalidTimeRange
	}
	return nil
}

// Todo is a todo list item with optional subtasks
type Todo struct {
	ID          int        `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Completed   bool       `json:"completed" db:"completed"`
	Pinned      bool       `json:"pinned" db:"pinned"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	Subtasks    []Subtask  `json:"subtasks"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsDueOn reports whether the todo is open and due on the calendar day of t.
func (t *Todo) IsDueOn(day time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Subtask belongs to a todo
type Subtask struct {
	ID        int       `json:"id" db:"id"`
	TodoID    int       `json:"todo_id" db:"todo_id"`
	Title     string    `json:"title" db:"title"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ChatRole is the author of a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of an assistant conversation
type ChatMessage struct {
	Role    ChatRole `json:"role" db:"role"`
	Content string   `json:"content" db:"content"`
}

// Conversation is a stored assistant chat
type Conversation struct {
	ID        string        `json:"id" db:"id"`
	Model     string        `json:"model" db:"model"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
