package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/auth"
	"github.com/lifesyncapp/lifesync/internal/views"
)

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if m.Screen == ScreenLogin {
			m.Screen = ScreenSignup
		} else {
			m.Screen = ScreenLogin
		}
		m.Auth.Err = ""
		m.resetAuthInputs()
		return m, nil
	case "tab", "down":
		m.cycleAuthField(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleAuthField(-1)
		return m, nil
	case "enter":
		return m.submitAuthForm()
	}

	var cmd tea.Cmd
	switch m.Auth.Field {
	case AuthFieldUsername:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	case AuthFieldPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	case AuthFieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case AuthFieldConfirm:
		m.confirmInput, cmd = m.confirmInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleAuthField(dir int) {
	fields := []AuthField{AuthFieldUsername, AuthFieldPassword}
	if m.Screen == ScreenSignup {
		fields = []AuthField{AuthFieldUsername, AuthFieldPassword, AuthFieldConfirm, AuthFieldName}
	}
	idx := 0
	for i, f := range fields {
		if f == m.Auth.Field {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(fields)) % len(fields)
	m.Auth.Field = fields[idx]

	m.usernameInput.Blur()
	m.passwordInput.Blur()
	m.nameInput.Blur()
	m.confirmInput.Blur()
	switch m.Auth.Field {
	case AuthFieldUsername:
		m.usernameInput.Focus()
	case AuthFieldPassword:
		m.passwordInput.Focus()
	case AuthFieldName:
		m.nameInput.Focus()
	case AuthFieldConfirm:
		m.confirmInput.Focus()
	}
}

func (m Model) submitAuthForm() (tea.Model, tea.Cmd) {
	if m.Screen == ScreenSignup {
		user, err := m.deps.Registry.Signup(auth.SignupInput{
			Username:        m.usernameInput.Value(),
			Password:        m.passwordInput.Value(),
			ConfirmPassword: m.confirmInput.Value(),
			Name:            m.nameInput.Value(),
		})
		if err != nil {
			m.Auth.Err = err.Error()
			return m, nil
		}
		m.enterSession(user)
		return m, nil
	}

	user, err := m.deps.Registry.Login(m.usernameInput.Value(), m.passwordInput.Value())
	if err != nil {
		m.Auth.Err = "Invalid username or password"
		return m, nil
	}
	m.enterSession(user)
	return m, nil
}

func (m Model) renderAuthView() string {
	return views.RenderAuthPanel(views.AuthPanelData{
		Signup:       m.Screen == ScreenSignup,
		UsernameView: m.usernameInput.View(),
		PasswordView: m.passwordInput.View(),
		ConfirmView:  m.confirmInput.View(),
		NameView:     m.nameInput.View(),
		ErrorText:    m.Auth.Err,
	})
}
