package e2etest

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// findControlForLabel returns the first element matching one of tags that the label containing labelText points
// to, either through its for attribute or by nesting.
func findControlForLabel(form *goquery.Selection, labelText string, tags ...string) (*goquery.Selection, error) {
	label := form.Find(fmt.Sprintf("label:contains(%q)", labelText)).First()
	if label.Length() == 0 {
		return nil, fmt.Errorf("label not found: %s", labelText)
	}

	id, hasFor := label.Attr("for")
	for _, tag := range tags {
		var control *goquery.Selection
		if hasFor {
			control = form.Find(fmt.Sprintf("%s[id=%q]", tag, id))
		} else {
			control = label.Find(tag)
		}
		if control.Length() > 0 {
			return control.First(), nil
		}
	}
	return nil, fmt.Errorf("%v not found for label: %s", tags, labelText)
}

// FindInputForLabel finds the input or textarea a form label refers to.
func FindInputForLabel(form *goquery.Selection, labelText string) (*goquery.Selection, error) {
	return findControlForLabel(form, labelText, "input", "textarea")
}

// FindSelectForLabel finds the select a form label refers to.
func FindSelectForLabel(form *goquery.Selection, labelText string) (*goquery.Selection, error) {
	return findControlForLabel(form, labelText, "select")
}

// FindForm finds the form posting to formActionURLPath.
func FindForm(doc *goquery.Document, formActionURLPath string) (*goquery.Selection, error) {
	form := doc.Find(fmt.Sprintf("form[action=%q]", formActionURLPath))
	if form.Length() == 0 {
		return nil, fmt.Errorf("form not found: %s", formActionURLPath)
	}
	return form, nil
}
