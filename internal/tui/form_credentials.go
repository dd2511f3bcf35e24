// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-save-sync/models"
)

// credentialsForm is the email and password form shared by the login and
// register screens.
type credentialsForm struct {
	title  string
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newCredentialsForm(title string) credentialsForm {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 1024
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return credentialsForm{title: title, inputs: []textinput.Model{emailInput, passwordInput}}
}

// credentials returns the entered values, or false with errMsg set when a
// field is empty.
func (f *credentialsForm) credentials() (models.Credentials, bool) {
	email := strings.TrimSpace(f.inputs[0].Value())
	password := f.inputs[1].Value()
	if email == "" || password == "" {
		f.errMsg = "Email and password are required"
		return models.Credentials{}, false
	}

	f.errMsg = ""
	return models.Credentials{Email: email, Password: password}, true
}

func (f *credentialsForm) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *credentialsForm) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f credentialsForm) update(msg tea.Msg) (credentialsForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f credentialsForm) View(submitting bool) string {
	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	b.WriteString("Email     │ [")
	b.WriteString(f.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(f.inputs[1].View())
	b.WriteString("]\n")

	if submitting {
		b.WriteString("\n[Submitting...]\n")
	} else {
		b.WriteString("\n[Submit]\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
		b.WriteString("\n")
	}

	return renderPage(f.title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}
