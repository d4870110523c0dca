package model

// OptionOther is the sentinel a dropdown stores when the user typed a free
// value; the companion *Other field carries the text.
const OptionOther = "Autre"

// Billet is one soil-transport ticket. The *Other companions are only set
// when the main field holds OptionOther.
type Billet struct {
	ID                string `json:"id"`
	Date              string `json:"date"` // YYYY-MM-DD
	Time              string `json:"time"`
	IssuerName        string `json:"issuerName"`
	ClientName        string `json:"clientName"`
	Provenance        string `json:"provenance"`
	Destination       string `json:"destination"`
	DestinationOther  string `json:"destinationOther,omitempty"`
	Plaque            string `json:"plaque"`
	PlaqueOther       string `json:"plaqueOther,omitempty"`
	TypeSol           string `json:"typeSol"`
	TypeSolOther      string `json:"typeSolOther,omitempty"`
	Quantite          string `json:"quantite"`
	QuantiteOther     string `json:"quantiteOther,omitempty"`
	Transporteur      string `json:"transporteur"`
	TransporteurOther string `json:"transporteurOther,omitempty"`
	Status            string `json:"status"`
	ApprovalDate      string `json:"approvalDate,omitempty"`
	ApproverName      string `json:"approverName,omitempty"`
}

// EffectivePlaque resolves the OptionOther sentinel to the free-text value.
func (b *Billet) EffectivePlaque() string {
	if b.Plaque == OptionOther {
		return b.PlaqueOther
	}
	return b.Plaque
}

// EffectiveTypeSol resolves the material name, falling back to the sentinel
// itself when no free text was captured.
func (b *Billet) EffectiveTypeSol() string {
	if b.TypeSol == OptionOther {
		if b.TypeSolOther != "" {
			return b.TypeSolOther
		}
		return OptionOther
	}
	if b.TypeSol == "" {
		return "Inconnu"
	}
	return b.TypeSol
}

// EffectiveQuantite resolves the tonnage string.
func (b *Billet) EffectiveQuantite() string {
	if b.Quantite == OptionOther {
		return b.QuantiteOther
	}
	return b.Quantite
}
