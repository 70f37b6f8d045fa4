package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arvoredo/arvoredo-pos/internal/catalog"
	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	"github.com/arvoredo/arvoredo-pos/pkg/enums"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

type editMode int

const (
	editProducts editMode = iota
	editVariants
	editPrompt
	editHistory
)

type promptKind int

const (
	promptQuantity promptKind = iota
	promptPrice
)

type editProductsLoadedMsg struct {
	products []catalog.ProductSummary
}

type editVariantsLoadedMsg struct {
	variants []models.BrandVariant
}

type editMovementsLoadedMsg struct {
	movements []models.StockMovement
}

type editDoneMsg struct {
	status string
}

// editModel is the catalog maintenance screen: browse families, drill into
// variants, adjust stock and price, and delete either level.
type editModel struct {
	svc        Services
	mode       editMode
	products   []catalog.ProductSummary
	cursor     int
	productID  int64
	variants   []models.BrandVariant
	vcursor    int
	movements  []models.StockMovement
	prompt     textinput.Model
	promptKind promptKind
	status     string
}

func newEditModel(svc Services) editModel {
	prompt := textinput.New()
	prompt.CharLimit = 20
	return editModel{svc: svc, prompt: prompt}
}

func (m editModel) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenEdit)
		products, err := svc.Catalog.ListProducts(ctx)
		if err != nil {
			return errMsg{err}
		}
		return editProductsLoadedMsg{products: products}
	}
}

func (m editModel) loadVariants(productID int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenEdit)
		variants, err := svc.Catalog.ListVariants(ctx, productID)
		if err != nil {
			return errMsg{err}
		}
		return editVariantsLoadedMsg{variants: variants}
	}
}

func (m editModel) loadMovements(variantID int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenEdit)
		movements, err := svc.Catalog.ListMovements(ctx, variantID)
		if err != nil {
			return errMsg{err}
		}
		return editMovementsLoadedMsg{movements: movements}
	}
}

// setQuantity writes the absolute count and logs the delta in the audit
// trail, the way the original edit screen paired the two calls.
func (m editModel) setQuantity(variant models.BrandVariant, quantity int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, logg := svc.log(ScreenEdit)
		if err := svc.Catalog.SetQuantity(ctx, variant.ID, quantity); err != nil {
			return errMsg{err}
		}

		delta := quantity - variant.Quantity
		if delta != 0 {
			movementType := enums.MovementTypeIn
			if delta < 0 {
				movementType = enums.MovementTypeOut
				delta = -delta
			}
			_, err := svc.Catalog.RecordMovement(ctx, catalog.RecordMovementInput{
				VariantID: variant.ID,
				Type:      string(movementType),
				Quantity:  delta,
				Reason:    "ajuste manual",
			})
			if err != nil {
				return errMsg{err}
			}
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "variant_id", variant.ID), "quantity updated")
		}
		return editDoneMsg{status: "Quantidade atualizada!"}
	}
}

func (m editModel) updatePrice(variantID int64, price decimal.Decimal) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenEdit)
		if err := svc.Catalog.UpdatePrice(ctx, variantID, price); err != nil {
			return errMsg{err}
		}
		return editDoneMsg{status: "Preço atualizado!"}
	}
}

func (m editModel) deleteVariant(variantID int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenEdit)
		if err := svc.Catalog.DeleteVariant(ctx, variantID); err != nil {
			return errMsg{err}
		}
		return editDoneMsg{status: "Marca removida!"}
	}
}

func (m editModel) deleteProduct(productID int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, logg := svc.log(ScreenEdit)
		if err := svc.Catalog.DeleteProductWithVariants(ctx, productID); err != nil {
			return errMsg{err}
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "product_id", productID), "product deleted")
		}
		return editDoneMsg{status: "Produto removido!"}
	}
}

func (m editModel) Update(msg tea.Msg) (editModel, tea.Cmd) {
	switch msg := msg.(type) {
	case editProductsLoadedMsg:
		m.products = msg.products
		if m.cursor >= len(m.products) {
			m.cursor = 0
		}
		return m, nil

	case editVariantsLoadedMsg:
		m.variants = msg.variants
		if m.vcursor >= len(m.variants) {
			m.vcursor = 0
		}
		m.mode = editVariants
		return m, nil

	case editMovementsLoadedMsg:
		m.movements = msg.movements
		m.mode = editHistory
		return m, nil

	case editDoneMsg:
		m.status = successStyle.Render(msg.status)
		if m.mode == editPrompt {
			m.mode = editVariants
		}
		if m.mode == editVariants {
			return m, tea.Batch(m.loadVariants(m.productID), m.load())
		}
		return m, m.load()

	case errMsg:
		m.status = msg.status()
		if m.mode == editPrompt {
			m.mode = editVariants
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == editPrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m editModel) handleKey(msg tea.KeyMsg) (editModel, tea.Cmd) {
	switch m.mode {
	case editProducts:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.products)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.products) > 0 {
				m.productID = m.products[m.cursor].ID
				return m, m.loadVariants(m.productID)
			}
		case "D":
			if len(m.products) > 0 {
				return m, m.deleteProduct(m.products[m.cursor].ID)
			}
		case "r":
			return m, m.load()
		}

	case editVariants:
		switch msg.String() {
		case "up", "k":
			if m.vcursor > 0 {
				m.vcursor--
			}
		case "down", "j":
			if m.vcursor < len(m.variants)-1 {
				m.vcursor++
			}
		case "esc":
			m.mode = editProducts
		case "q":
			if len(m.variants) > 0 {
				m.promptKind = promptQuantity
				m.prompt.SetValue(strconv.Itoa(m.variants[m.vcursor].Quantity))
				m.prompt.Focus()
				m.mode = editPrompt
			}
		case "p":
			if len(m.variants) > 0 {
				m.promptKind = promptPrice
				m.prompt.SetValue(m.variants[m.vcursor].UnitPrice.StringFixed(2))
				m.prompt.Focus()
				m.mode = editPrompt
			}
		case "h":
			if len(m.variants) > 0 {
				return m, m.loadMovements(m.variants[m.vcursor].ID)
			}
		case "D":
			if len(m.variants) > 0 {
				return m, m.deleteVariant(m.variants[m.vcursor].ID)
			}
		}

	case editPrompt:
		switch msg.String() {
		case "esc":
			m.mode = editVariants
			m.prompt.Blur()
		case "enter":
			m.prompt.Blur()
			variant := m.variants[m.vcursor]
			raw := m.prompt.Value()
			if m.promptKind == promptQuantity {
				quantity, err := strconv.Atoi(strings.TrimSpace(raw))
				if err != nil {
					m.status = dangerStyle.Render("Quantidade inválida")
					m.mode = editVariants
					return m, nil
				}
				return m, m.setQuantity(variant, quantity)
			}
			price, ok := parsePrice(raw)
			if !ok {
				m.status = dangerStyle.Render("Preço inválido")
				m.mode = editVariants
				return m, nil
			}
			return m, m.updatePrice(variant.ID, price)
		default:
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}

	case editHistory:
		switch msg.String() {
		case "esc", "enter":
			m.mode = editVariants
		}
	}
	return m, nil
}

func (m editModel) View() string {
	switch m.mode {
	case editVariants:
		return m.variantsView()
	case editPrompt:
		return m.promptView()
	case editHistory:
		return m.historyView()
	default:
		return m.productsView()
	}
}

func (m editModel) productsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("✏️ Editar Produtos"))
	b.WriteString("\n")

	if len(m.products) == 0 {
		b.WriteString(mutedStyle.Render("Nenhum produto cadastrado."))
	}
	for i, p := range m.products {
		line := fmt.Sprintf("%s (%s) — %d marcas • %d un • %s",
			p.Name, p.Category, p.VariantCount, p.TotalQuantity, formatMoney(p.TotalValue))
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(unselectedItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(
		FormatKey("enter", "marcas")+" • "+FormatKey("D", "excluir produto")+" • "+FormatKey("r", "recarregar"),
	))
	return b.String()
}

func (m editModel) variantsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("✏️ Marcas do Produto"))
	b.WriteString("\n")

	if len(m.variants) == 0 {
		b.WriteString(mutedStyle.Render("Nenhuma marca cadastrada."))
	}
	for i, v := range m.variants {
		expiry := "sem validade"
		if v.ExpiresAt != nil {
			expiry = "val. " + v.ExpiresAt.Format("02/01/2006")
		}
		line := fmt.Sprintf("%s [%s] — %s • %d un • %s",
			v.Brand, v.Code, formatMoney(v.UnitPrice), v.Quantity, expiry)
		if i == m.vcursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(unselectedItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(
		FormatKey("q", "quantidade")+" • "+FormatKey("p", "preço")+" • "+
			FormatKey("h", "histórico")+" • "+FormatKey("D", "excluir")+" • "+FormatKey("esc", "voltar"),
	))
	return b.String()
}

func (m editModel) promptView() string {
	label := "Nova quantidade"
	if m.promptKind == promptPrice {
		label = "Novo preço"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(label),
		m.prompt.View(),
		helpStyle.Render(FormatKey("enter", "confirmar")+" • "+FormatKey("esc", "cancelar")),
	)
	return boxStyle.Render(body)
}

func (m editModel) historyView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📜 Histórico de Movimentação"))
	b.WriteString("\n")

	if len(m.movements) == 0 {
		b.WriteString(mutedStyle.Render("Nenhuma movimentação registrada."))
	}
	for _, mov := range m.movements {
		reason := ""
		if mov.Reason != nil {
			reason = " — " + *mov.Reason
		}
		b.WriteString(fmt.Sprintf("%s  %s  %d un%s\n",
			mov.OccurredAt.Format("02/01/2006 15:04"), mov.Type, mov.Quantity, reason))
	}

	b.WriteString("\n" + helpStyle.Render(FormatKey("esc", "voltar")))
	return b.String()
}
