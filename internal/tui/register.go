package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arvoredo/arvoredo-pos/internal/catalog"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	regName = iota
	regCategory
	regBrand
	regCode
	regPrice
	regQty
	regExpiry
	regFieldCount
)

var registerLabels = [regFieldCount]string{
	"Nome do produto",
	"Categoria",
	"Marca",
	"Código (vazio = automático)",
	"Preço unitário",
	"Quantidade",
	"Validade (dd/mm/aaaa)",
}

type registerLoadedMsg struct {
	products []catalog.ProductSummary
}

type registerSavedMsg struct {
	result *catalog.RegisterEntryResult
	name   string
	brand  string
}

// registerModel is the product registration screen: one form that reuses or
// creates the family, adds the variant, and logs the intake movement.
type registerModel struct {
	svc      Services
	inputs   [regFieldCount]textinput.Model
	focus    int
	status   string
	products []catalog.ProductSummary
}

func newRegisterModel(svc Services) registerModel {
	m := registerModel{svc: svc}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = registerLabels[i]
		input.CharLimit = 120
		m.inputs[i] = input
	}
	m.inputs[regQty].SetValue("0")
	m.inputs[regName].Focus()
	return m
}

func (m registerModel) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenRegister)
		products, err := svc.Catalog.ListProducts(ctx)
		if err != nil {
			return errMsg{err}
		}
		return registerLoadedMsg{products: products}
	}
}

func (m registerModel) save(input catalog.RegisterEntryInput) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, logg := svc.log(ScreenRegister)
		result, err := svc.Catalog.RegisterEntry(ctx, input)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "register entry failed", err)
			}
			return errMsg{err}
		}
		if logg != nil {
			logg.Info(svc.Logger.WithFields(ctx, map[string]any{
				"product_id": result.ProductID,
				"variant_id": result.VariantID,
				"reused":     result.ReusedProduct,
			}), "entry registered")
		}
		return registerSavedMsg{result: result, name: input.Name, brand: input.Brand}
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerLoadedMsg:
		m.products = msg.products
		return m, nil

	case registerSavedMsg:
		label := fmt.Sprintf("Marca adicionada: %s - %s", msg.name, msg.brand)
		if msg.result.ReusedProduct {
			label += " (produto existente)"
		}
		m.status = successStyle.Render(label)
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.inputs[regQty].SetValue("0")
		m.setFocus(regName)
		return m, m.load()

	case errMsg:
		m.status = msg.status()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "down":
			m.setFocus((m.focus + 1) % regFieldCount)
			return m, nil
		case "up":
			m.setFocus((m.focus + regFieldCount - 1) % regFieldCount)
			return m, nil
		case "ctrl+s":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *registerModel) setFocus(index int) {
	m.inputs[m.focus].Blur()
	m.focus = index
	m.inputs[m.focus].Focus()
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[regName].Value())
	category := strings.TrimSpace(m.inputs[regCategory].Value())
	brand := strings.TrimSpace(m.inputs[regBrand].Value())
	if name == "" || category == "" || brand == "" {
		m.status = dangerStyle.Render("Preencha todos os campos!")
		return m, nil
	}

	price, ok := parsePrice(m.inputs[regPrice].Value())
	if !ok {
		m.status = dangerStyle.Render("Preço inválido")
		return m, nil
	}

	qty := 0
	if raw := strings.TrimSpace(m.inputs[regQty].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			m.status = dangerStyle.Render("Quantidade inválida")
			return m, nil
		}
		qty = parsed
	}

	expiry, ok := parseDate(m.inputs[regExpiry].Value())
	if !ok {
		m.status = dangerStyle.Render("Validade inválida (use dd/mm/aaaa)")
		return m, nil
	}

	m.status = mutedStyle.Render("Salvando...")
	return m, m.save(catalog.RegisterEntryInput{
		Name:      name,
		Category:  category,
		Brand:     brand,
		Code:      m.inputs[regCode].Value(),
		UnitPrice: price,
		Quantity:  qty,
		ExpiresAt: expiry,
	})
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📦 Cadastro de Produtos"))
	b.WriteString("\n")

	for i := range m.inputs {
		b.WriteString(mutedStyle.Render(registerLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(
		FormatKey("enter/↑/↓", "campo")+" • "+FormatKey("ctrl+s", "salvar"),
	))

	if len(m.products) > 0 {
		rows := make([]string, 0, len(m.products))
		for _, p := range m.products {
			rows = append(rows, fmt.Sprintf(
				"%s (%s) — %d marcas • %d un • %s",
				p.Name, p.Category, p.VariantCount, p.TotalQuantity, formatMoney(p.TotalValue),
			))
		}
		b.WriteString("\n\n" + boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	return b.String()
}
