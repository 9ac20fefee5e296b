package handlers

import (
	"html/template"
	"time"

	"portfolio_site/internal/models"
)

// Page names, also used as the active navigation key
const (
	PageHome    = "home"
	PageDetails = "details"
	PageBrowse  = "browse"
	PageProfile = "profile"
)

// NavItem is an entry of the top-level page navigation
type NavItem struct {
	Page  string
	Label string
	URL   string
}

// PageNav lists the site pages in menu order
var PageNav = []NavItem{
	{Page: PageHome, Label: "Home", URL: "/"},
	{Page: PageDetails, Label: "Details", URL: "/details"},
	{Page: PageBrowse, Label: "Browse", URL: "/browse"},
	{Page: PageProfile, Label: "Profile", URL: "/profile"},
}

// SectionLink is an in-page navigation link to a home page section
type SectionLink struct {
	ID    string
	Label string
}

// Href is the fragment the link targets.
func (l SectionLink) Href() string { return "#" + l.ID }

// PageData is the common data structure passed to page templates
type PageData struct {
	Title      string
	ActiveNav  string
	Nav        []NavItem
	Sections   []SectionLink
	FormAction string
	Year       int
	Data       interface{} // Page-specific data
}

// IsActive reports whether page is the one being rendered.
func (p PageData) IsActive(page string) bool { return p.ActiveNav == page }

// HomeData is the payload of the home page
type HomeData struct {
	Studies []models.StudyExperience
}

// ProjectView is a project with its description rendered to HTML
type ProjectView struct {
	models.Project
	DescriptionHTML template.HTML
}

// BrowseData is the payload of the browse page
type BrowseData struct {
	Projects []ProjectView
}

func newPageData(title, active, formAction string, sections []SectionLink, data interface{}) PageData {
	return PageData{
		Title:      title,
		ActiveNav:  active,
		Nav:        PageNav,
		Sections:   sections,
		FormAction: formAction,
		Year:       time.Now().Year(),
		Data:       data,
	}
}
