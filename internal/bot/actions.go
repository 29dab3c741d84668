package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownAction marks callback data no decoder recognizes.
var ErrUnknownAction = errors.New("unknown callback action")

// Action is one decoded callback button press. Callback data strings are
// decoded exactly once, here at the transport boundary; the dispatcher
// switches over the variants and never inspects raw strings.
type Action interface {
	Data() string
}

// MainMenu returns to the start menu.
type MainMenu struct{}

// MyOrders shows the customer's order history placeholder.
type MyOrders struct{}

// About shows the store description.
type About struct{}

// AdminPanel opens the admin panel.
type AdminPanel struct{}

// AddProduct starts the creation wizard.
type AddProduct struct{}

// ListProducts shows one page of the admin product list.
type ListProducts struct {
	Page int
}

// EditChoose shows the product picker for editing.
type EditChoose struct{}

// EditProduct starts an edit dialog for one product.
type EditProduct struct {
	ProductID int
}

// EditPhotos starts the photo replacement dialog for one product.
type EditPhotos struct {
	ProductID int
}

// DeleteChoose shows the product picker for deletion.
type DeleteChoose struct{}

// DeleteConfirm asks for confirmation before deleting one product.
type DeleteConfirm struct {
	ProductID int
}

// DeleteDo deletes one product after confirmation.
type DeleteDo struct {
	ProductID int
}

// PromptOption is a discrete choice inside an open dialog; Key is the
// option key the state machine offered.
type PromptOption struct {
	Key string
}

// OrderAccept confirms a relayed order back to its customer.
type OrderAccept struct {
	CustomerChatID int64
	OrderID        string
}

// OrderDecline rejects a relayed order back to its customer.
type OrderDecline struct {
	CustomerChatID int64
	OrderID        string
}

func (MainMenu) Data() string       { return "back_start" }
func (MyOrders) Data() string       { return "my_orders" }
func (About) Data() string          { return "about" }
func (AdminPanel) Data() string     { return "admin_panel" }
func (AddProduct) Data() string     { return "admin_add" }
func (a ListProducts) Data() string { return fmt.Sprintf("admin_list_%d", a.Page) }
func (EditChoose) Data() string     { return "admin_edit_choose" }
func (a EditProduct) Data() string  { return fmt.Sprintf("edit_p_%d", a.ProductID) }
func (a EditPhotos) Data() string   { return fmt.Sprintf("edit_photos_%d", a.ProductID) }
func (DeleteChoose) Data() string   { return "admin_del_choose" }
func (a DeleteConfirm) Data() string {
	return fmt.Sprintf("del_cf_%d", a.ProductID)
}
func (a DeleteDo) Data() string     { return fmt.Sprintf("del_do_%d", a.ProductID) }
func (a PromptOption) Data() string { return "opt_" + a.Key }
func (a OrderAccept) Data() string {
	return fmt.Sprintf("ord_accept_%d_%s", a.CustomerChatID, a.OrderID)
}
func (a OrderDecline) Data() string {
	return fmt.Sprintf("ord_decline_%d_%s", a.CustomerChatID, a.OrderID)
}

// DecodeAction parses raw callback data into its action variant.
func DecodeAction(data string) (Action, error) {
	switch data {
	case "back_start":
		return MainMenu{}, nil
	case "my_orders":
		return MyOrders{}, nil
	case "about":
		return About{}, nil
	case "admin_panel":
		return AdminPanel{}, nil
	case "admin_add":
		return AddProduct{}, nil
	case "admin_edit_choose":
		return EditChoose{}, nil
	case "admin_del_choose":
		return DeleteChoose{}, nil
	}

	switch {
	case strings.HasPrefix(data, "admin_list_"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "admin_list_"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		return ListProducts{Page: page}, nil
	case strings.HasPrefix(data, "edit_p_"):
		return decodeProductAction(data, "edit_p_", func(id int) Action { return EditProduct{ProductID: id} })
	case strings.HasPrefix(data, "edit_photos_"):
		return decodeProductAction(data, "edit_photos_", func(id int) Action { return EditPhotos{ProductID: id} })
	case strings.HasPrefix(data, "del_cf_"):
		return decodeProductAction(data, "del_cf_", func(id int) Action { return DeleteConfirm{ProductID: id} })
	case strings.HasPrefix(data, "del_do_"):
		return decodeProductAction(data, "del_do_", func(id int) Action { return DeleteDo{ProductID: id} })
	case strings.HasPrefix(data, "opt_"):
		return PromptOption{Key: strings.TrimPrefix(data, "opt_")}, nil
	case strings.HasPrefix(data, "ord_accept_"):
		chatID, orderID, err := decodeOrderSuffix(strings.TrimPrefix(data, "ord_accept_"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		return OrderAccept{CustomerChatID: chatID, OrderID: orderID}, nil
	case strings.HasPrefix(data, "ord_decline_"):
		chatID, orderID, err := decodeOrderSuffix(strings.TrimPrefix(data, "ord_decline_"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		return OrderDecline{CustomerChatID: chatID, OrderID: orderID}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
}

func decodeProductAction(data, prefix string, build func(int) Action) (Action, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
	}
	return build(id), nil
}

// decodeOrderSuffix splits "<chat_id>_<order_id>"; the order id itself may
// contain underscores, so only the first separator counts.
func decodeOrderSuffix(suffix string) (int64, string, error) {
	idx := strings.Index(suffix, "_")
	if idx <= 0 || idx == len(suffix)-1 {
		return 0, "", errors.New("malformed order suffix")
	}
	chatID, err := strconv.ParseInt(suffix[:idx], 10, 64)
	if err != nil {
		return 0, "", err
	}
	return chatID, suffix[idx+1:], nil
}
