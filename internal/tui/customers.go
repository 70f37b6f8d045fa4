package tui

import (
	"fmt"
	"strings"

	"github.com/arvoredo/arvoredo-pos/internal/customers"
	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	custName = iota
	custNickname
	custTaxID
	custFieldCount
)

var customerLabels = [custFieldCount]string{
	"Nome",
	"Apelido",
	"CPF",
}

type customersLoadedMsg struct {
	customers []models.Customer
}

type customerSavedMsg struct {
	name string
}

// customersModel is the customer registry screen: a small form plus the
// alphabetical listing, with a toggle for the on-tab credit flag.
type customersModel struct {
	svc       Services
	inputs    [custFieldCount]textinput.Model
	focus     int
	onTab     bool
	status    string
	customers []models.Customer
}

func newCustomersModel(svc Services) customersModel {
	m := customersModel{svc: svc}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = customerLabels[i]
		input.CharLimit = 120
		m.inputs[i] = input
	}
	m.inputs[custName].Focus()
	return m
}

func (m customersModel) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenCustomers)
		list, err := svc.Customers.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return customersLoadedMsg{customers: list}
	}
}

func (m customersModel) save(input customers.CreateCustomerInput) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, logg := svc.log(ScreenCustomers)
		customer, err := svc.Customers.Create(ctx, input)
		if err != nil {
			return errMsg{err}
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "customer_id", customer.ID), "customer created")
		}
		return customerSavedMsg{name: customer.Name}
	}
}

func (m customersModel) Update(msg tea.Msg) (customersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case customersLoadedMsg:
		m.customers = msg.customers
		return m, nil

	case customerSavedMsg:
		m.status = successStyle.Render("Cliente cadastrado: " + msg.name)
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.onTab = false
		m.setFocus(custName)
		return m, m.load()

	case errMsg:
		m.status = msg.status()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "down":
			m.setFocus((m.focus + 1) % custFieldCount)
			return m, nil
		case "up":
			m.setFocus((m.focus + custFieldCount - 1) % custFieldCount)
			return m, nil
		case "ctrl+t":
			m.onTab = !m.onTab
			return m, nil
		case "ctrl+s":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *customersModel) setFocus(index int) {
	m.inputs[m.focus].Blur()
	m.focus = index
	m.inputs[m.focus].Focus()
}

func (m customersModel) submit() (customersModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[custName].Value())
	if name == "" {
		m.status = dangerStyle.Render("Nome é obrigatório!")
		return m, nil
	}

	m.status = mutedStyle.Render("Salvando...")
	return m, m.save(customers.CreateCustomerInput{
		Name:     name,
		Nickname: m.inputs[custNickname].Value(),
		TaxID:    m.inputs[custTaxID].Value(),
		OnTab:    m.onTab,
	})
}

func (m customersModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("👥 Clientes"))
	b.WriteString("\n")

	for i := range m.inputs {
		b.WriteString(mutedStyle.Render(customerLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	tab := "não"
	if m.onTab {
		tab = "sim"
	}
	b.WriteString(mutedStyle.Render("Fiado: ") + tab + "\n")

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(
		FormatKey("ctrl+t", "fiado")+" • "+FormatKey("ctrl+s", "salvar"),
	))

	if len(m.customers) > 0 {
		b.WriteString("\n\n" + mutedStyle.Render("Cadastrados:") + "\n")
		for _, c := range m.customers {
			line := c.Name
			if c.Nickname != nil {
				line += fmt.Sprintf(" (%s)", *c.Nickname)
			}
			if c.OnTab {
				line += " • fiado"
			}
			b.WriteString(unselectedItemStyle.Render(line) + "\n")
		}
	}

	return b.String()
}
