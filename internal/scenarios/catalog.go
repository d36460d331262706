package scenarios

import (
	"context"
	"fmt"
	"strings"
)

// Literal field values shared by all three variants so the suites stay
// mechanically comparable.
const (
	FormFullName         = "Alex Morgan"
	FormEmail            = "alex.morgan@example.com"
	FormCurrentAddress   = "12 Harbour Street, Sydney"
	FormPermanentAddress = "90 Collins Street, Melbourne"

	RecordFirstName  = "Riley"
	RecordLastName   = "Chen"
	RecordEmail      = "riley.chen@example.com"
	RecordAge        = "34"
	RecordSalary     = "120000"
	RecordDepartment = "Platform"
)

// Catalog returns the fixed scenario list in execution order. Scenarios run
// strictly sequentially against one shared browser session; order matters
// only in that each scenario re-navigates before acting.
func Catalog() []Scenario {
	return []Scenario{
		formFill(),
		buttonClick(),
		checkbox(),
		radioButton(),
		tableRowInsert(),
		fileUpload(),
		alertDialog(),
		navigationDrill(),
		buttonListing(),
		agentTask(),
	}
}

// ByName returns the named scenario from the catalog
func ByName(name string) (Scenario, bool) {
	for _, sc := range Catalog() {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

// formFill fills the four text-box fields, submits, and probes the
// confirmation output.
func formFill() Scenario {
	fill := func(ctx context.Context, h *Harness) error {
		if err := h.Browser.Navigate(ctx, h.URL("/text-box")); err != nil {
			return err
		}
		if err := h.Browser.Fill(ctx, "#userName", FormFullName); err != nil {
			return err
		}
		if err := h.Browser.Fill(ctx, "#userEmail", FormEmail); err != nil {
			return err
		}
		if err := h.Browser.Fill(ctx, "#currentAddress", FormCurrentAddress); err != nil {
			return err
		}
		if err := h.Browser.Fill(ctx, "#permanentAddress", FormPermanentAddress); err != nil {
			return err
		}
		return h.Browser.Click(ctx, "#submit")
	}

	return Scenario{
		Name: "form_fill",
		Path: "/text-box",

		Classic: func(ctx context.Context, h *Harness) (string, error) {
			if err := fill(ctx, h); err != nil {
				return "", err
			}
			if err := h.Browser.WaitVisible(ctx, "#output"); err != nil {
				return "", err
			}
			return h.Browser.Text(ctx, "#output")
		},

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/text-box")); err != nil {
				return "", err
			}
			steps := []string{
				fmt.Sprintf("type %q into the full name field", FormFullName),
				fmt.Sprintf("type %q into the email field", FormEmail),
				fmt.Sprintf("type %q into the current address field", FormCurrentAddress),
				fmt.Sprintf("type %q into the permanent address field", FormPermanentAddress),
				"click the submit button",
			}
			for _, step := range steps {
				if err := lang.Act(ctx, step); err != nil {
					return "", err
				}
			}
			return lang.Extract(ctx, "extract the confirmation text shown below the form after submitting")
		},

		Hybrid: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := fill(ctx, h); err != nil {
				return "", err
			}
			if err := h.Browser.WaitVisible(ctx, "#output"); err != nil {
				return "", err
			}
			return lang.Extract(ctx, "extract the confirmation text shown below the form after submitting")
		},
	}
}

// buttonClick clicks the designated button and probes the dynamic message
func buttonClick() Scenario {
	return Scenario{
		Name: "button_click",
		Path: "/buttons",

		Classic: func(ctx context.Context, h *Harness) (string, error) {
			if err := h.Browser.Navigate(ctx, h.URL("/buttons")); err != nil {
				return "", err
			}
			if err := h.Browser.Click(ctx, "#clickBtn"); err != nil {
				return "", err
			}
			return h.Browser.Text(ctx, "#dynamicClickMessage")
		},

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/buttons")); err != nil {
				return "", err
			}
			if err := lang.Act(ctx, "click the button labelled Click Me"); err != nil {
				return "", err
			}
			return lang.Extract(ctx, "extract the dynamic message that appeared after clicking the button")
		},

		Hybrid: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/buttons")); err != nil {
				return "", err
			}
			if err := h.Browser.Click(ctx, "#clickBtn"); err != nil {
				return "", err
			}
			if err := h.Browser.WaitVisible(ctx, "#dynamicClickMessage"); err != nil {
				return "", err
			}
			return lang.Extract(ctx, "extract the dynamic message that appeared after clicking the button")
		},
	}
}

// checkbox ticks the home checkbox and probes the selection result
func checkbox() Scenario {
	return Scenario{
		Name: "checkbox",
		Path: "/checkbox",

		Classic: func(ctx context.Context, h *Harness) (string, error) {
			if err := h.Browser.Navigate(ctx, h.URL("/checkbox")); err != nil {
				return "", err
			}
			if err := h.Browser.Click(ctx, "#homeCheckbox"); err != nil {
				return "", err
			}
			return h.Browser.Text(ctx, "#result")
		},

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/checkbox")); err != nil {
				return "", err
			}
			if err := lang.Act(ctx, "tick the Home checkbox"); err != nil {
				return "", err
			}
			return lang.Extract(ctx, "extract the selection result text shown after ticking the checkbox")
		},

		Hybrid: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/checkbox")); err != nil {
				return "", err
			}
			if err := h.Browser.Click(ctx, "#homeCheckbox"); err != nil {
				return "", err
			}
			ok, detail, err := lang.Observe(ctx, "is the Home checkbox now shown as selected in the result text?")
			if err != nil {
				return "", err
			}
			if !ok {
				return "", fmt.Errorf("checkbox selection not observed: %s", detail)
			}
			return detail, nil
		},
	}
}

// radioButton selects the Yes radio and probes the result
func radioButton() Scenario {
	return Scenario{
		Name: "radio_button",
		Path: "/radio-button",

		Classic: func(ctx context.Context, h *Harness) (string, error) {
			if err := h.Browser.Navigate(ctx, h.URL("/radio-button")); err != nil {
				return "", err
			}
			if err := h.Browser.Click(ctx, `label[for="yesRadio"]`); err != nil {
				return "", err
			}
			return h.Browser.Text(ctx, "#radioResult")
		},

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/radio-button")); err != nil {
				return "", err
			}
			if err := lang.Act(ctx, "select the radio button labelled Yes"); err != nil {
				return "", err
			}
			return lang.Extract(ctx, "extract the text confirming which radio button is selected")
		},

		Hybrid: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/radio-button")); err != nil {
				return "", err
			}
			if err := h.Browser.Click(ctx, `label[for="yesRadio"]`); err != nil {
				return "", err
			}
			return lang.Extract(ctx, "extract the text confirming which radio button is selected")
		},
	}
}

// tableRowInsert adds one record to the web table and verifies the row
// collection grew and contains the inserted values.
func tableRowInsert() Scenario {
	const rowSelector = "#recordsTable tbody tr"

	countRows := func(ctx context.Context, h *Harness) (int, error) {
		html, err := h.Browser.OuterHTML(ctx)
		if err != nil {
			return 0, err
		}
		rows, err := TableRows(html, rowSelector)
		if err != nil {
			return 0, err
		}
		return len(rows), nil
	}

	insert := func(ctx context.Context, h *Harness) error {
		if err := h.Browser.Click(ctx, "#addNewRecordButton"); err != nil {
			return err
		}
		fields := map[string]string{
			"#firstName":  RecordFirstName,
			"#lastName":   RecordLastName,
			"#userEmail":  RecordEmail,
			"#age":        RecordAge,
			"#salary":     RecordSalary,
			"#department": RecordDepartment,
		}
		// Fixed fill order keeps the variants byte-comparable in logs
		for _, sel := range []string{"#firstName", "#lastName", "#userEmail", "#age", "#salary", "#department"} {
			if err := h.Browser.Fill(ctx, sel, fields[sel]); err != nil {
				return err
			}
		}
		return h.Browser.Click(ctx, "#submit")
	}

	verify := func(ctx context.Context, h *Harness, before int) (string, error) {
		html, err := h.Browser.OuterHTML(ctx)
		if err != nil {
			return "", err
		}
		rows, err := TableRows(html, rowSelector)
		if err != nil {
			return "", err
		}
		if len(rows) <= before {
			return "", fmt.Errorf("row count did not grow: %d before, %d after", before, len(rows))
		}
		for _, row := range rows {
			if strings.Contains(row, RecordFirstName) && strings.Contains(row, RecordEmail) {
				return row, nil
			}
		}
		return "", fmt.Errorf("inserted record not found in %d rows", len(rows))
	}

	return Scenario{
		Name: "table_row_insert",
		Path: "/webtables",

		Classic: func(ctx context.Context, h *Harness) (string, error) {
			if err := h.Browser.Navigate(ctx, h.URL("/webtables")); err != nil {
				return "", err
			}
			before, err := countRows(ctx, h)
			if err != nil {
				return "", err
			}
			if err := insert(ctx, h); err != nil {
				return "", err
			}
			return verify(ctx, h, before)
		},

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/webtables")); err != nil {
				return "", err
			}
			before, err := countRows(ctx, h)
			if err != nil {
				return "", err
			}
			steps := []string{
				"click the Add button to open the registration form",
				fmt.Sprintf("type %q into the first name field", RecordFirstName),
				fmt.Sprintf("type %q into the last name field", RecordLastName),
				fmt.Sprintf("type %q into the email field", RecordEmail),
				fmt.Sprintf("type %q into the age field", RecordAge),
				fmt.Sprintf("type %q into the salary field", RecordSalary),
				fmt.Sprintf("type %q into the department field", RecordDepartment),
				"click the submit button",
			}
			for _, step := range steps {
				if err := lang.Act(ctx, step); err != nil {
					return "", err
				}
			}
			return verify(ctx, h, before)
		},

		Hybrid: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/webtables")); err != nil {
				return "", err
			}
			before, err := countRows(ctx, h)
			if err != nil {
				return "", err
			}
			if err := insert(ctx, h); err != nil {
				return "", err
			}
			if _, err := verify(ctx, h, before); err != nil {
				return "", err
			}
			return lang.Extract(ctx, fmt.Sprintf("extract the table row containing %q", RecordEmail))
		},
	}
}

// fileUpload selects the fixed sample file and probes the displayed filename
func fileUpload() Scenario {
	return Scenario{
		Name: "file_upload",
		Path: "/upload-download",

		Classic: func(ctx context.Context, h *Harness) (string, error) {
			if err := h.Browser.Navigate(ctx, h.URL("/upload-download")); err != nil {
				return "", err
			}
			if err := h.Browser.SetFiles(ctx, "#uploadFile", h.UploadFile); err != nil {
				return "", err
			}
			path, err := h.Browser.Text(ctx, "#uploadedFilePath")
			if err != nil {
				return "", err
			}
			if !strings.Contains(path, "sample.txt") {
				return "", fmt.Errorf("uploaded path %q does not reference sample.txt", path)
			}
			return path, nil
		},

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			// File chooser dialogs cannot be driven by inference; the file
			// is attached deterministically and only the probe is delegated.
			if err := h.Browser.Navigate(ctx, h.URL("/upload-download")); err != nil {
				return "", err
			}
			if err := h.Browser.SetFiles(ctx, "#uploadFile", h.UploadFile); err != nil {
				return "", err
			}
			return lang.Extract(ctx, "extract the path of the file that was just uploaded")
		},

		Hybrid: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/upload-download")); err != nil {
				return "", err
			}
			if err := h.Browser.SetFiles(ctx, "#uploadFile", h.UploadFile); err != nil {
				return "", err
			}
			ok, detail, err := lang.Observe(ctx, "does the page show that a file named sample.txt was uploaded?")
			if err != nil {
				return "", err
			}
			if !ok {
				return "", fmt.Errorf("upload not observed: %s", detail)
			}
			return detail, nil
		},
	}
}

// alertDialog triggers a JavaScript alert, accepts it, and reports its message
func alertDialog() Scenario {
	classic := func(ctx context.Context, h *Harness) (string, error) {
		if err := h.Browser.Navigate(ctx, h.URL("/alerts")); err != nil {
			return "", err
		}
		wait := h.Browser.ExpectDialog(ctx)
		if err := h.Browser.Click(ctx, "#alertButton"); err != nil {
			return "", err
		}
		return wait(h.dialogWait())
	}

	return Scenario{
		Name: "alert_dialog",
		Path: "/alerts",

		Classic: classic,

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/alerts")); err != nil {
				return "", err
			}
			wait := h.Browser.ExpectDialog(ctx)
			if err := lang.Act(ctx, "click the button that triggers an alert"); err != nil {
				return "", err
			}
			return wait(h.dialogWait())
		},

		// Dialogs are browser chrome, invisible to the page snapshot; the
		// hybrid variant is identical to the classic one.
		Hybrid: classic,
	}
}

// navigationDrill drills from the home page into the text-box sub-section and
// verifies a field from it is visible.
func navigationDrill() Scenario {
	drill := func(ctx context.Context, h *Harness) error {
		if err := h.Browser.Navigate(ctx, h.URL("/")); err != nil {
			return err
		}
		if err := h.Browser.Click(ctx, "#elements-card"); err != nil {
			return err
		}
		return h.Browser.Click(ctx, "#item-text-box")
	}

	return Scenario{
		Name: "navigation",
		Path: "/",

		Classic: func(ctx context.Context, h *Harness) (string, error) {
			if err := drill(ctx, h); err != nil {
				return "", err
			}
			if err := h.Browser.WaitVisible(ctx, "#userName"); err != nil {
				return "", err
			}
			visible, err := h.Browser.IsVisible(ctx, "#userName")
			if err != nil {
				return "", err
			}
			if !visible {
				return "", fmt.Errorf("full name field not visible after navigation")
			}
			return "full name field visible", nil
		},

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/")); err != nil {
				return "", err
			}
			if err := lang.Act(ctx, "open the Elements section"); err != nil {
				return "", err
			}
			if err := lang.Act(ctx, "open the Text Box item"); err != nil {
				return "", err
			}
			ok, detail, err := lang.Observe(ctx, "is the full name input field visible on the page?")
			if err != nil {
				return "", err
			}
			if !ok {
				return "", fmt.Errorf("full name field not observed: %s", detail)
			}
			return detail, nil
		},

		Hybrid: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := drill(ctx, h); err != nil {
				return "", err
			}
			ok, detail, err := lang.Observe(ctx, "is the full name input field visible on the page?")
			if err != nil {
				return "", err
			}
			if !ok {
				return "", fmt.Errorf("full name field not observed: %s", detail)
			}
			return detail, nil
		},
	}
}

// buttonListing lists the labels of all buttons on the buttons page
func buttonListing() Scenario {
	return Scenario{
		Name: "button_listing",
		Path: "/buttons",

		Classic: func(ctx context.Context, h *Harness) (string, error) {
			if err := h.Browser.Navigate(ctx, h.URL("/buttons")); err != nil {
				return "", err
			}
			html, err := h.Browser.OuterHTML(ctx)
			if err != nil {
				return "", err
			}
			labels, err := ButtonLabels(html)
			if err != nil {
				return "", err
			}
			if len(labels) == 0 {
				return "", fmt.Errorf("no buttons found on %s", h.URL("/buttons"))
			}
			return strings.Join(labels, ", "), nil
		},

		Language: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/buttons")); err != nil {
				return "", err
			}
			return lang.Extract(ctx, "list the labels of all buttons on the page, comma separated")
		},

		Hybrid: func(ctx context.Context, h *Harness) (string, error) {
			lang, err := h.language()
			if err != nil {
				return "", err
			}
			if err := h.Browser.Navigate(ctx, h.URL("/buttons")); err != nil {
				return "", err
			}
			html, err := h.Browser.OuterHTML(ctx)
			if err != nil {
				return "", err
			}
			labels, err := ButtonLabels(html)
			if err != nil {
				return "", err
			}
			if len(labels) == 0 {
				return "", fmt.Errorf("no buttons found on %s", h.URL("/buttons"))
			}
			extracted, err := lang.Extract(ctx, "list the labels of all buttons on the page, comma separated")
			if err != nil {
				return "", err
			}
			if extracted == "" {
				return "", fmt.Errorf("inference surface returned no button labels")
			}
			return strings.Join(labels, ", "), nil
		},
	}
}

// agentTask hands a whole multi-step goal to the agent surface. There is no
// deterministic variant; without an inference credential it is skipped.
func agentTask() Scenario {
	run := func(ctx context.Context, h *Harness) (string, error) {
		if h.Agent == nil {
			return "", ErrLanguageUnavailable
		}
		goal := fmt.Sprintf(
			"Open %s, fill the full name field with %q and the email field with %q, submit the form, and confirm the output shows the submitted name.",
			h.URL("/text-box"), FormFullName, FormEmail)

		result, err := h.Agent.ExecuteTask(ctx, goal)
		if err != nil {
			return "", err
		}
		if result == nil {
			return "", fmt.Errorf("agent returned no result")
		}
		if !result.Success {
			return "", fmt.Errorf("agent task failed after %d steps: %s", result.Steps, result.Message)
		}
		if result.Message != "" {
			return result.Message, nil
		}
		return fmt.Sprintf("agent completed in %d steps", result.Steps), nil
	}

	return Scenario{
		Name:     "agent_task",
		Path:     "/text-box",
		Language: run,
		Hybrid:   run,
	}
}
