// Package input decodes a structured submission document into a sequence
// of common.Order values using gopkg.in/yaml.v3.
package input

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/emberbook/matcher/internal/common"
)

// rawSubmission mirrors the on-disk document shape: a list of records with
// side, price, size, user_id and type fields.
type rawSubmission struct {
	Side   string `yaml:"side"`
	Price  uint64 `yaml:"price"`
	Size   uint64 `yaml:"size"`
	UserID uint64 `yaml:"user_id"`
	Type   string `yaml:"type"`
}

// ParseSubmissions decodes a YAML document into a slice of orders in
// document order. A malformed document or an unknown side/type value is
// reported as a single wrapped error before any submission reaches the
// engine; there is no partial result on error.
func ParseSubmissions(r io.Reader) ([]common.Order, error) {
	var raws []rawSubmission
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("parse submissions: %w", err)
	}

	orders := make([]common.Order, 0, len(raws))
	for i, raw := range raws {
		side, err := parseSide(raw.Side)
		if err != nil {
			return nil, fmt.Errorf("parse submissions: record %d: %w", i, err)
		}
		policy, err := parsePolicy(raw.Type)
		if err != nil {
			return nil, fmt.Errorf("parse submissions: record %d: %w", i, err)
		}
		orders = append(orders, common.Order{
			Price:  raw.Price,
			Size:   raw.Size,
			UserID: raw.UserID,
			Side:   side,
			Policy: policy,
		})
	}
	return orders, nil
}

func parseSide(s string) (common.Side, error) {
	switch s {
	case "Buy":
		return common.Buy, nil
	case "Sell":
		return common.Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func parsePolicy(s string) (common.Policy, error) {
	switch s {
	case "Limit":
		return common.Limit, nil
	case "FillOrKill":
		return common.FillOrKill, nil
	case "ImmediateOrCancel":
		return common.ImmediateOrCancel, nil
	default:
		return 0, fmt.Errorf("unknown order type %q", s)
	}
}
