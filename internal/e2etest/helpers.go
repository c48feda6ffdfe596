package e2etest

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// FindInputForLabel finds the input, textarea or select labelled with labelText in the given form.
func FindInputForLabel(form *goquery.Selection, labelText string) (*goquery.Selection, error) {
	label := form.Find(fmt.Sprintf("label:contains('%s')", labelText))
	if label.Length() == 0 {
		return nil, fmt.Errorf("label not found: %s", labelText)
	}

	var input *goquery.Selection
	if id, exists := label.Attr("for"); exists {
		input = form.Find(fmt.Sprintf("input#%s,textarea#%s,select#%s", id, id, id))
	} else {
		input = label.Find("input,textarea,select")
	}
	if input.Length() == 0 {
		return nil, fmt.Errorf("input not found for label: %s", labelText)
	}
	return input, nil
}

// FindForm finds a form in the doc identified with action formActionUrlPath and returns the form selection.
func FindForm(doc *goquery.Document, formActionURLPath string) (*goquery.Selection, error) {
	form := doc.Find(fmt.Sprintf("form[action='%s']", formActionURLPath))
	if form.Length() == 0 {
		return nil, fmt.Errorf("form not found: %s", formActionURLPath)
	}
	return form, nil
}

// Today reads the date the dashboard treats as today.
func Today(dashboard *goquery.Document) (string, error) {
	today, ok := dashboard.Find("[data-today]").Attr("data-today")
	if !ok || today == "" {
		return "", fmt.Errorf("dashboard at %s does not show today's date", dashboard.Url)
	}
	return today, nil
}

// MissionCompleted reports the data-completed flag of a mission listed on a day page. It returns "" when the mission
// is not listed.
func MissionCompleted(doc *goquery.Document, mission string) string {
	return doc.Find(fmt.Sprintf(`li.mission[data-mission="%s"]`, mission)).AttrOr("data-completed", "")
}

// XPTotal reads the total XP shown on the dashboard.
func XPTotal(dashboard *goquery.Document) string {
	return dashboard.Find("[data-xp]").AttrOr("data-xp", "")
}
