package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveOrderID turns user input into a full order id: exact match first,
// then unique id prefix.
func resolveOrderID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("order ID is required")
	}

	orders, err := app.Orders.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, o := range orders {
		if o.ID == input {
			return o.ID, nil
		}
	}

	var matches []string
	for _, o := range orders {
		if strings.HasPrefix(o.ID, input) {
			matches = append(matches, o.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("order not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("order ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
