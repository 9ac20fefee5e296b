// Package pages holds the templ components rendered outside the html/template
// page set, such as the error page used by the HTTP error handler.
package pages

// ErrorPageProps is the view model of the error page
type ErrorPageProps struct {
	Code         int
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}

// Link is where the back button points, home unless set
func (p ErrorPageProps) Link() string {
	if p.BackLink == "" {
		return "/"
	}
	return p.BackLink
}

// LinkText is the back button label
func (p ErrorPageProps) LinkText() string {
	if p.BackText == "" {
		return "Back to home"
	}
	return p.BackText
}
