package transfer

// PostCreation carries the form fields of a new post. ScheduleDate uses
// the YYYY-MM-DD form; empty means unscheduled.
type PostCreation struct {
	Content      string `json:"content"`
	Caption      string `json:"caption"`
	ScheduleDate string `json:"schedule_date"`
}

// PostEdit carries the editable fields of an existing post. Empty
// strings leave content and caption untouched; an empty ScheduleDate
// clears the date.
type PostEdit struct {
	Content      string `json:"content"`
	Caption      string `json:"caption"`
	ScheduleDate string `json:"schedule_date"`
}
