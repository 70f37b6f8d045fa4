package tui

import (
	"fmt"
	"strings"

	"github.com/arvoredo/arvoredo-pos/internal/orders"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

type salesLoadedMsg struct {
	sales []orders.SaleRecord
}

// salesModel is the read-only sales report: every order line in the store,
// newest order first.
type salesModel struct {
	svc   Services
	table table.Model
	sales []orders.SaleRecord
}

func newSalesModel(svc Services) salesModel {
	columns := []table.Column{
		{Title: "Data", Width: 16},
		{Title: "Cliente", Width: 20},
		{Title: "Produto", Width: 20},
		{Title: "Marca", Width: 14},
		{Title: "Qtd", Width: 5},
		{Title: "Preço", Width: 12},
		{Title: "Subtotal", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(colorPrimary)
	styles.Selected = styles.Selected.Foreground(colorText).Background(colorPrimary)
	t.SetStyles(styles)

	return salesModel{svc: svc, table: t}
}

func (m salesModel) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenSales)
		sales, err := svc.Orders.ListSales(ctx)
		if err != nil {
			return errMsg{err}
		}
		return salesLoadedMsg{sales: sales}
	}
}

func (m salesModel) Update(msg tea.Msg) (salesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case salesLoadedMsg:
		m.sales = msg.sales
		rows := make([]table.Row, 0, len(m.sales))
		for _, sale := range m.sales {
			rows = append(rows, table.Row{
				sale.PlacedAt.Format("02/01/2006 15:04"),
				sale.CustomerName,
				sale.ProductName,
				sale.Brand,
				fmt.Sprintf("%d", sale.Quantity),
				formatMoney(sale.UnitPrice),
				formatMoney(sale.Subtotal),
			})
		}
		m.table.SetRows(rows)
		return m, nil

	case errMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m salesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("💰 Vendas"))
	b.WriteString("\n")

	if len(m.sales) == 0 {
		b.WriteString(mutedStyle.Render("Nenhuma venda registrada."))
	} else {
		b.WriteString(m.table.View())
	}

	b.WriteString("\n" + helpStyle.Render(
		FormatKey("↑/↓", "navegar")+" • "+FormatKey("r", "recarregar"),
	))
	return b.String()
}
