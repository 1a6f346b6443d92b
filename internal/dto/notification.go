package dto

// SendRemindersRequest defines the batch of students to send fee reminders to.
type SendRemindersRequest struct {
	StudentIDs []string `json:"studentIDs" binding:"required,min=1"`
	MonthLabel string   `json:"monthLabel" binding:"required"`
}

// SendRemindersResponse reports the outcome of a batch reminder send. The
// batch always runs to completion; failures are counted, not raised.
type SendRemindersResponse struct {
	SuccessCount int `json:"successCount"`
	FailCount    int `json:"failCount"`
}
