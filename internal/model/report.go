package model

type CreateReportRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
	Detail     string `json:"detail"`
	Severity   string `json:"severity"`
}

type CreateReportResponse struct {
	Report Report `json:"report"`
}

type ResolveReportRequest struct {
	ID     string `uri:"id"`
	Action string `json:"action"`
}

type ResolveReportResponse struct{}

type GetReportsRequest struct {
	Status string `form:"status"`
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
}

type GetReportsResponse struct {
	Reports []Report `json:"reports"`
}
