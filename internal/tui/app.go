package tui

import (
	"context"

	"github.com/arvoredo/arvoredo-pos/internal/catalog"
	"github.com/arvoredo/arvoredo-pos/internal/customers"
	"github.com/arvoredo/arvoredo-pos/internal/orders"
	"github.com/arvoredo/arvoredo-pos/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifies one of the five navigation destinations.
type Screen int

const (
	ScreenRegister Screen = iota
	ScreenEdit
	ScreenSales
	ScreenCustomers
	ScreenOrders
)

var screenNames = map[Screen]string{
	ScreenRegister:  "Cadastro",
	ScreenEdit:      "Editar",
	ScreenSales:     "Vendas",
	ScreenCustomers: "Clientes",
	ScreenOrders:    "Pedidos",
}

// Services bundles everything the screens call into.
type Services struct {
	Catalog   catalog.Service
	Customers customers.Service
	Orders    orders.Service
	Logger    *logger.Logger
}

func (s Services) log(screen Screen) (context.Context, *logger.Logger) {
	ctx := context.Background()
	if s.Logger != nil {
		ctx = s.Logger.WithScreen(ctx, screenNames[screen])
	}
	return ctx, s.Logger
}

// Shell is the top-level model. The active screen is explicit state here;
// there is no process-global current-screen indicator.
type Shell struct {
	screen    Screen
	register  registerModel
	edit      editModel
	sales     salesModel
	customers customersModel
	orders    ordersModel
	width     int
	height    int
}

// NewShell builds the shell with all five screens wired to the services.
func NewShell(svc Services) Shell {
	return Shell{
		screen:    ScreenRegister,
		register:  newRegisterModel(svc),
		edit:      newEditModel(svc),
		sales:     newSalesModel(svc),
		customers: newCustomersModel(svc),
		orders:    newOrdersModel(svc),
	}
}

func (s Shell) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, s.register.load())
}

func (s Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return s, tea.Quit
		case "tab":
			return s.switchTo((s.screen + 1) % 5)
		case "shift+tab":
			return s.switchTo((s.screen + 4) % 5)
		case "f1":
			return s.switchTo(ScreenRegister)
		case "f2":
			return s.switchTo(ScreenEdit)
		case "f3":
			return s.switchTo(ScreenSales)
		case "f4":
			return s.switchTo(ScreenCustomers)
		case "f5":
			return s.switchTo(ScreenOrders)
		}
	}

	return s.updateActive(msg)
}

// switchTo changes the active screen and re-fetches its data. Every screen
// re-queries fully on entry; nothing subscribes to change notifications.
func (s Shell) switchTo(screen Screen) (tea.Model, tea.Cmd) {
	s.screen = screen
	switch screen {
	case ScreenRegister:
		return s, s.register.load()
	case ScreenEdit:
		return s, s.edit.load()
	case ScreenSales:
		return s, s.sales.load()
	case ScreenCustomers:
		return s, s.customers.load()
	case ScreenOrders:
		return s, s.orders.load()
	}
	return s, nil
}

func (s Shell) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch s.screen {
	case ScreenRegister:
		s.register, cmd = s.register.Update(msg)
	case ScreenEdit:
		s.edit, cmd = s.edit.Update(msg)
	case ScreenSales:
		s.sales, cmd = s.sales.Update(msg)
	case ScreenCustomers:
		s.customers, cmd = s.customers.Update(msg)
	case ScreenOrders:
		s.orders, cmd = s.orders.Update(msg)
	}
	return s, cmd
}

func (s Shell) View() string {
	header := s.headerView()

	var body string
	switch s.screen {
	case ScreenRegister:
		body = s.register.View()
	case ScreenEdit:
		body = s.edit.View()
	case ScreenSales:
		body = s.sales.View()
	case ScreenCustomers:
		body = s.customers.View()
	case ScreenOrders:
		body = s.orders.View()
	}

	help := helpStyle.Render(
		FormatKey("tab", "próxima tela") + " • " +
			FormatKey("F1-F5", "telas") + " • " +
			FormatKey("ctrl+c", "sair"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (s Shell) headerView() string {
	tabs := make([]string, 0, 5)
	for screen := ScreenRegister; screen <= ScreenOrders; screen++ {
		if screen == s.screen {
			tabs = append(tabs, activeTabStyle.Render(screenNames[screen]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(screenNames[screen]))
		}
	}
	title := titleStyle.Render("🌳 Arvoredo")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

// Run starts the shell program and blocks until the operator quits.
func Run(svc Services) error {
	p := tea.NewProgram(NewShell(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
