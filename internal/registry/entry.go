package registry

import (
	"encoding/json"
	"errors"
)

// StoreKey is the key the shop list is persisted under.
const StoreKey = "matriculeList"

// Entry maps a shop to its fiscal registration number.
type Entry struct {
	ShopName string `json:"shopName"`
	FiscalID string `json:"fiscalId"`
}

// DefaultEntries seed an empty registry.
var DefaultEntries = []Entry{
	{ShopName: "Boutique A", FiscalID: "ABC12345"},
	{ShopName: "Boutique B", FiscalID: "XYZ67890"},
	{ShopName: "Boutique C", FiscalID: "XXX98765"},
}

var errUnknownShape = errors.New("registry entry has no known fields")

// UnmarshalJSON accepts the canonical shape and the two legacy shapes
// {matriculeFiscale, shop} and {matricule, description}.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw struct {
		ShopName         *string `json:"shopName"`
		FiscalID         *string `json:"fiscalId"`
		Shop             *string `json:"shop"`
		MatriculeFiscale *string `json:"matriculeFiscale"`
		Description      *string `json:"description"`
		Matricule        *string `json:"matricule"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	shopName, okName := first(raw.ShopName, raw.Shop, raw.Description)
	fiscalID, okID := first(raw.FiscalID, raw.MatriculeFiscale, raw.Matricule)
	if !okName && !okID {
		return errUnknownShape
	}

	*e = Entry{ShopName: shopName, FiscalID: fiscalID}
	return nil
}

func first(values ...*string) (string, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return "", false
}
