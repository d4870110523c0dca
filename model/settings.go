package model

// AppSettings is the single shared configuration document: the dropdown
// option lists plus the embedded user roster.
type AppSettings struct {
	Issuers       []string      `json:"issuers"`
	Clients       []string      `json:"clients"`
	Provenances   []string      `json:"provenances"`
	Destinations  []string      `json:"destinations"`
	Plaques       []string      `json:"plaques"`
	TypeSols      []string      `json:"typeSols"`
	Quantites     []string      `json:"quantites"`
	Transporteurs []string      `json:"transporteurs"`
	Users         []UserAccount `json:"users"`
}

// OptionList returns a pointer to the named option list, nil for unknown
// names (users are not an option list).
func (s *AppSettings) OptionList(name string) *[]string {
	switch name {
	case "issuers":
		return &s.Issuers
	case "clients":
		return &s.Clients
	case "provenances":
		return &s.Provenances
	case "destinations":
		return &s.Destinations
	case "plaques":
		return &s.Plaques
	case "typeSols":
		return &s.TypeSols
	case "quantites":
		return &s.Quantites
	case "transporteurs":
		return &s.Transporteurs
	}
	return nil
}

// FindUserByName looks an account up by its display name join key.
func (s *AppSettings) FindUserByName(name string) *UserAccount {
	for i := range s.Users {
		if s.Users[i].Name == name {
			return &s.Users[i]
		}
	}
	return nil
}

// FindUserByCode looks an account up by PIN code.
func (s *AppSettings) FindUserByCode(code string) *UserAccount {
	for i := range s.Users {
		if s.Users[i].Code == code {
			return &s.Users[i]
		}
	}
	return nil
}
