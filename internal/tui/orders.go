package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arvoredo/arvoredo-pos/internal/catalog"
	"github.com/arvoredo/arvoredo-pos/internal/orders"
	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

type orderMode int

const (
	orderPickCustomer orderMode = iota
	orderCart
	orderPickProduct
	orderPickVariant
	orderItemForm
)

type ordersLoadedMsg struct {
	customers []models.Customer
	products  []catalog.ProductSummary
}

type orderVariantsLoadedMsg struct {
	variants []models.BrandVariant
}

type orderSavedMsg struct {
	orderID int64
	total   decimal.Decimal
}

// cartLine is one pending order line held in memory until the operator
// confirms the whole order.
type cartLine struct {
	variant  models.BrandVariant
	product  string
	quantity int
	note     string
}

func (l cartLine) subtotal() decimal.Decimal {
	return l.variant.UnitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// ordersModel is the order entry screen: pick the customer, assemble the
// cart line by line, then persist the order and its items in one go.
type ordersModel struct {
	svc       Services
	mode      orderMode
	customers []models.Customer
	ccursor   int
	customer  *models.Customer
	products  []catalog.ProductSummary
	pcursor   int
	variants  []models.BrandVariant
	vcursor   int
	cart      []cartLine
	cartPos   int
	qtyInput  textinput.Model
	noteInput textinput.Model
	onQty     bool
	status    string
}

func newOrdersModel(svc Services) ordersModel {
	qty := textinput.New()
	qty.Placeholder = "Quantidade"
	qty.CharLimit = 6
	note := textinput.New()
	note.Placeholder = "Observação (opcional)"
	note.CharLimit = 200
	return ordersModel{svc: svc, qtyInput: qty, noteInput: note, onQty: true}
}

func (m ordersModel) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenOrders)
		list, err := svc.Customers.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		products, err := svc.Catalog.ListProducts(ctx)
		if err != nil {
			return errMsg{err}
		}
		return ordersLoadedMsg{customers: list, products: products}
	}
}

func (m ordersModel) loadVariants(productID int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, _ := svc.log(ScreenOrders)
		variants, err := svc.Catalog.ListVariants(ctx, productID)
		if err != nil {
			return errMsg{err}
		}
		return orderVariantsLoadedMsg{variants: variants}
	}
}

// save persists the cart: one order row, then one line per cart entry. The
// service recomputes the denormalized total after each line.
func (m ordersModel) save() tea.Cmd {
	svc := m.svc
	customerID := m.customer.ID
	cart := make([]cartLine, len(m.cart))
	copy(cart, m.cart)

	return func() tea.Msg {
		ctx, logg := svc.log(ScreenOrders)
		order, err := svc.Orders.Create(ctx, customerID)
		if err != nil {
			return errMsg{err}
		}

		for _, line := range cart {
			_, err := svc.Orders.AddLineItem(ctx, orders.AddLineItemInput{
				OrderID:   order.ID,
				VariantID: line.variant.ID,
				Quantity:  line.quantity,
				UnitPrice: line.variant.UnitPrice,
				Note:      line.note,
			})
			if err != nil {
				return errMsg{err}
			}
		}

		saved, err := svc.Orders.Get(ctx, order.ID)
		if err != nil {
			return errMsg{err}
		}
		if logg != nil {
			logg.Info(svc.Logger.WithFields(ctx, map[string]any{
				"order_id": saved.ID,
				"items":    len(cart),
			}), "order saved")
		}
		return orderSavedMsg{orderID: saved.ID, total: saved.Total}
	}
}

func (m ordersModel) Update(msg tea.Msg) (ordersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		m.customers = msg.customers
		m.products = msg.products
		if m.ccursor >= len(m.customers) {
			m.ccursor = 0
		}
		if m.pcursor >= len(m.products) {
			m.pcursor = 0
		}
		return m, nil

	case orderVariantsLoadedMsg:
		m.variants = msg.variants
		m.vcursor = 0
		m.mode = orderPickVariant
		return m, nil

	case orderSavedMsg:
		m.status = successStyle.Render(fmt.Sprintf(
			"Pedido #%d salvo! Total: %s", msg.orderID, formatMoney(msg.total)))
		m.cart = nil
		m.customer = nil
		m.mode = orderPickCustomer
		return m, nil

	case errMsg:
		m.status = msg.status()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == orderItemForm {
		return m.updateItemForm(msg)
	}
	return m, nil
}

func (m ordersModel) handleKey(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	switch m.mode {
	case orderPickCustomer:
		switch msg.String() {
		case "up", "k":
			if m.ccursor > 0 {
				m.ccursor--
			}
		case "down", "j":
			if m.ccursor < len(m.customers)-1 {
				m.ccursor++
			}
		case "enter":
			if len(m.customers) > 0 {
				customer := m.customers[m.ccursor]
				m.customer = &customer
				m.mode = orderCart
				m.status = ""
			}
		case "r":
			return m, m.load()
		}

	case orderCart:
		switch msg.String() {
		case "a":
			m.mode = orderPickProduct
		case "up", "k":
			if m.cartPos > 0 {
				m.cartPos--
			}
		case "down", "j":
			if m.cartPos < len(m.cart)-1 {
				m.cartPos++
			}
		case "d":
			if len(m.cart) > 0 {
				m.cart = append(m.cart[:m.cartPos], m.cart[m.cartPos+1:]...)
				if m.cartPos >= len(m.cart) && m.cartPos > 0 {
					m.cartPos--
				}
			}
		case "esc":
			m.mode = orderPickCustomer
			m.customer = nil
		case "ctrl+s":
			if len(m.cart) == 0 {
				m.status = dangerStyle.Render("Adicione ao menos um item!")
				return m, nil
			}
			m.status = mutedStyle.Render("Salvando pedido...")
			return m, m.save()
		}

	case orderPickProduct:
		switch msg.String() {
		case "up", "k":
			if m.pcursor > 0 {
				m.pcursor--
			}
		case "down", "j":
			if m.pcursor < len(m.products)-1 {
				m.pcursor++
			}
		case "enter":
			if len(m.products) > 0 {
				return m, m.loadVariants(m.products[m.pcursor].ID)
			}
		case "esc":
			m.mode = orderCart
		}

	case orderPickVariant:
		switch msg.String() {
		case "up", "k":
			if m.vcursor > 0 {
				m.vcursor--
			}
		case "down", "j":
			if m.vcursor < len(m.variants)-1 {
				m.vcursor++
			}
		case "enter":
			if len(m.variants) > 0 {
				m.qtyInput.SetValue("1")
				m.noteInput.SetValue("")
				m.onQty = true
				m.qtyInput.Focus()
				m.noteInput.Blur()
				m.mode = orderItemForm
			}
		case "esc":
			m.mode = orderPickProduct
		}

	case orderItemForm:
		switch msg.String() {
		case "esc":
			m.mode = orderPickVariant
		case "tab", "down", "up":
			m.onQty = !m.onQty
			if m.onQty {
				m.qtyInput.Focus()
				m.noteInput.Blur()
			} else {
				m.noteInput.Focus()
				m.qtyInput.Blur()
			}
		case "enter":
			return m.addToCart()
		default:
			return m.updateItemForm(msg)
		}
	}
	return m, nil
}

func (m ordersModel) updateItemForm(msg tea.Msg) (ordersModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.onQty {
		m.qtyInput, cmd = m.qtyInput.Update(msg)
	} else {
		m.noteInput, cmd = m.noteInput.Update(msg)
	}
	return m, cmd
}

func (m ordersModel) addToCart() (ordersModel, tea.Cmd) {
	quantity, err := strconv.Atoi(strings.TrimSpace(m.qtyInput.Value()))
	if err != nil || quantity <= 0 {
		m.status = dangerStyle.Render("Quantidade inválida")
		return m, nil
	}

	variant := m.variants[m.vcursor]
	m.cart = append(m.cart, cartLine{
		variant:  variant,
		product:  m.products[m.pcursor].Name,
		quantity: quantity,
		note:     strings.TrimSpace(m.noteInput.Value()),
	})
	m.cartPos = len(m.cart) - 1
	m.status = ""
	m.mode = orderCart
	return m, nil
}

func (m ordersModel) View() string {
	switch m.mode {
	case orderCart:
		return m.cartView()
	case orderPickProduct:
		return m.pickProductView()
	case orderPickVariant:
		return m.pickVariantView()
	case orderItemForm:
		return m.itemFormView()
	default:
		return m.pickCustomerView()
	}
}

func (m ordersModel) pickCustomerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🧾 Novo Pedido — Cliente"))
	b.WriteString("\n")

	if len(m.customers) == 0 {
		b.WriteString(mutedStyle.Render("Nenhum cliente cadastrado. Cadastre em F4."))
	}
	for i, c := range m.customers {
		line := c.Name
		if c.Nickname != nil {
			line += fmt.Sprintf(" (%s)", *c.Nickname)
		}
		if i == m.ccursor {
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
		FormatKey("enter", "selecionar")+" • "+FormatKey("r", "recarregar"),
	))
	return b.String()
}

func (m ordersModel) cartView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🧾 Pedido — " + m.customer.Name))
	b.WriteString("\n")

	if len(m.cart) == 0 {
		b.WriteString(mutedStyle.Render("Carrinho vazio."))
		b.WriteString("\n")
	}

	total := decimal.Zero
	for i, line := range m.cart {
		total = total.Add(line.subtotal())
		text := fmt.Sprintf("%s %s x%d — %s",
			line.product, line.variant.Brand, line.quantity, formatMoney(line.subtotal()))
		if line.note != "" {
			text += " (" + line.note + ")"
		}
		if i == m.cartPos {
			b.WriteString(selectedItemStyle.Render("> " + text))
		} else {
			b.WriteString(unselectedItemStyle.Render(text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + mutedStyle.Render("Total: ") + successStyle.Render(formatMoney(total)) + "\n")

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(
		FormatKey("a", "adicionar")+" • "+FormatKey("d", "remover")+" • "+
			FormatKey("ctrl+s", "salvar pedido")+" • "+FormatKey("esc", "trocar cliente"),
	))
	return b.String()
}

func (m ordersModel) pickProductView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🧾 Pedido — Produto"))
	b.WriteString("\n")

	if len(m.products) == 0 {
		b.WriteString(mutedStyle.Render("Nenhum produto cadastrado."))
	}
	for i, p := range m.products {
		line := fmt.Sprintf("%s (%s)", p.Name, p.Category)
		if i == m.pcursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(unselectedItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render(
		FormatKey("enter", "marcas")+" • "+FormatKey("esc", "voltar"),
	))
	return b.String()
}

func (m ordersModel) pickVariantView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🧾 Pedido — Marca"))
	b.WriteString("\n")

	if len(m.variants) == 0 {
		b.WriteString(mutedStyle.Render("Nenhuma marca para este produto."))
	}
	for i, v := range m.variants {
		line := fmt.Sprintf("%s — %s • %d un", v.Brand, formatMoney(v.UnitPrice), v.Quantity)
		if i == m.vcursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(unselectedItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render(
		FormatKey("enter", "selecionar")+" • "+FormatKey("esc", "voltar"),
	))
	return b.String()
}

func (m ordersModel) itemFormView() string {
	variant := m.variants[m.vcursor]
	var b strings.Builder
	b.WriteString(titleStyle.Render("🧾 Item — " + variant.Brand))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Preço unitário: ") + formatMoney(variant.UnitPrice) + "\n\n")
	b.WriteString(m.qtyInput.View() + "\n")
	b.WriteString(m.noteInput.View() + "\n")

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(
		FormatKey("tab", "campo")+" • "+FormatKey("enter", "adicionar")+" • "+FormatKey("esc", "cancelar"),
	))
	return b.String()
}
