package entity

import "github.com/forumlab/backend/pkg/enum"

type ReportTargetType string

var (
	ReportTargetPost      = enum.New(ReportTargetType("post"))
	ReportTargetComment   = enum.New(ReportTargetType("comment"))
	ReportTargetUser      = enum.New(ReportTargetType("user"))
	ReportTargetCommunity = enum.New(ReportTargetType("community"))
)

type ReportStatus string

var (
	ReportStatusPending  = enum.New(ReportStatus("pending"))
	ReportStatusApproved = enum.New(ReportStatus("approved"))
	ReportStatusRejected = enum.New(ReportStatus("rejected"))
)

type ReportSeverity string

var (
	ReportSeverityLow    = enum.New(ReportSeverity("low"))
	ReportSeverityMedium = enum.New(ReportSeverity("medium"))
	ReportSeverityHigh   = enum.New(ReportSeverity("high"))
)

type Report struct {
	Base
	ReporterID string `gorm:"uniqueIndex:idx_report_once"`
	Reporter   User   `gorm:"foreignKey:ReporterID"`

	TargetType ReportTargetType `gorm:"uniqueIndex:idx_report_once"`
	TargetID   string           `gorm:"uniqueIndex:idx_report_once"`

	Reason   string
	Detail   string         `gorm:"type:text"`
	Status   ReportStatus   `gorm:"default:pending"`
	Severity ReportSeverity `gorm:"default:low"`
}
