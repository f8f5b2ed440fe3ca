package model

import "time"

// Package model contains the data shapes shared by the client, services and views.

// User is the profile of the logged-in user as returned by GET /api/user.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Grade string `json:"grade"`
	Date  string `json:"date"`
}

// Report is a locally stored complaint about a document. It never reaches the backend API.
type Report struct {
	Key           string    `json:"key"`
	DocumentID    int64     `json:"document_id"`
	DocumentTitle string    `json:"document_title"`
	Reason        string    `json:"reason"`
	Description   string    `json:"description"`
	Reporter      string    `json:"reporter"`
	CreatedAt     time.Time `json:"created_at"`
}

// AllCategories is the listing sidebar entry that disables the category filter.
const AllCategories = "전체"

// ListingCategories are the sidebar entries of the archive listing, in display order.
var ListingCategories = []string{AllCategories, "학술팀 보고서", "미디어팀 보고서", "미디어팀 미디어", "기타"}

// UploadCategories are the categories a document can be filed under.
var UploadCategories = []string{"논문", "포스터", "영상", "DB", "일반"}

// ReportReason is a selectable reason on the report form.
type ReportReason struct {
	Value string
	Label string
}

// ReportReasons lists the accepted report reasons.
var ReportReasons = []ReportReason{
	{Value: "inappropriate", Label: "부적절한 내용"},
	{Value: "copyright", Label: "저작권 침해"},
	{Value: "spam", Label: "스팸/광고"},
	{Value: "false", Label: "허위 정보"},
	{Value: "other", Label: "기타"},
}

// Grades are the selectable school years on the registration form.
var Grades = []string{"1", "2", "3"}
