package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/gymplanner/internal/e2etest"
	"github.com/myrjola/gymplanner/internal/testhelpers"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "GYMPLANNER_SQLITE_URL":
		return ":memory:", true
	case "GYMPLANNER_ADDR":
		return "localhost:0", true
	case "GYMPLANNER_SEED":
		return "42", true
	default:
		return "", false
	}
}

func Test_application_home(t *testing.T) {
	var (
		ctx = t.Context()
		doc *goquery.Document
	)
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	if doc, err = server.Client().GetDoc(ctx, "/"); err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}

	form, err := e2etest.FindForm(doc, "/plans")
	if err != nil {
		t.Fatalf("Failed to find plan form: %v", err)
	}

	var days []string
	form.Find("input[name=days]").Each(func(_ int, s *goquery.Selection) {
		days = append(days, s.AttrOr("value", ""))
	})
	wantDays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if diff := cmp.Diff(wantDays, days); diff != "" {
		t.Errorf("day checkboxes mismatch (-want +got):\n%s", diff)
	}

	var equipment []string
	form.Find("input[name=equipment]").Each(func(_ int, s *goquery.Selection) {
		equipment = append(equipment, s.AttrOr("value", ""))
	})
	wantEquipment := []string{
		"Bodyweight", "Free Weights", "Support & Benches", "Bodyweight Tools", "Cables & Resistance",
		"Machines", "Cardio Equipment", "Specialty Equipment",
	}
	if diff := cmp.Diff(wantEquipment, equipment); diff != "" {
		t.Errorf("equipment checkboxes mismatch (-want +got):\n%s", diff)
	}

	if n := form.Find("select[name^=priority-]").Length(); n != 8 {
		t.Errorf("Expected 8 priority selects, got %d", n)
	}
	if placeholder := form.Find("input#height").AttrOr("placeholder", ""); placeholder != "170" {
		t.Errorf("Expected height placeholder 170, got %q", placeholder)
	}
}

func Test_application_plansPOST(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	t.Run("renders plan", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		doc, err = client.SubmitFormDoc(ctx, doc, "/plans", map[string]string{
			"Height (cm)":     "180",
			"Weight (kg)":     "85",
			"Age":             "30",
			"Monday":          "Monday",
			"Thursday":        "Thursday",
			"Free Weights":    "Free Weights",
			"Chest priority":  "High",
			"Training goal":   "Muscle Build",
		})
		if err != nil {
			t.Fatalf("Failed to submit form: %v", err)
		}

		var days []string
		doc.Find("section.session").Each(func(_ int, s *goquery.Selection) {
			days = append(days, strings.TrimPrefix(s.AttrOr("id", ""), "session-"))
			if n := s.Find("li.exercise").Length(); n < 3 {
				t.Errorf("Expected at least 3 exercises on %s, got %d", s.AttrOr("id", ""), n)
			}
		})
		if diff := cmp.Diff([]string{"Monday", "Thursday"}, days); diff != "" {
			t.Errorf("session days mismatch (-want +got):\n%s", diff)
		}

		if got := doc.Find("#bmi").Text(); got != "26.2" {
			t.Errorf("Expected BMI 26.2, got %q", got)
		}
		if got := doc.Find("#bmi-status").Text(); got != "Overweight" {
			t.Errorf("Expected BMI status Overweight, got %q", got)
		}
		if got := doc.Find("#bmr").Text(); got != "1830 kcal" {
			t.Errorf("Expected BMR 1830 kcal, got %q", got)
		}
	})

	t.Run("rejects invalid number", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		resp, err := client.SubmitForm(ctx, doc, "/plans", map[string]string{"Weight (kg)": "heavy"})
		if err != nil {
			t.Fatalf("Failed to submit form: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
		doc, err = goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			t.Fatalf("Failed to parse document: %v", err)
		}
		if got := doc.Find("p.error").Text(); got != "weight must be a number" {
			t.Errorf("Expected weight error, got %q", got)
		}
		if _, err = e2etest.FindForm(doc, "/plans"); err != nil {
			t.Errorf("Expected the form to be shown again: %v", err)
		}
	})

	t.Run("rejects non-finite height", func(t *testing.T) {
		for _, value := range []string{"NaN", "Inf"} {
			doc, err := client.GetDoc(ctx, "/")
			if err != nil {
				t.Fatalf("Failed to get document: %v", err)
			}
			resp, err := client.SubmitForm(ctx, doc, "/plans", map[string]string{"Height (cm)": value})
			if err != nil {
				t.Fatalf("Failed to submit form: %v", err)
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected status 400 for height %q, got %d", value, resp.StatusCode)
			}
		}
	})

	t.Run("rejects out of range intensity", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		resp, err := client.SubmitForm(ctx, doc, "/plans", map[string]string{"Intensity": "12"})
		if err != nil {
			t.Fatalf("Failed to submit form: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})
}
