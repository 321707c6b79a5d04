package projection

import (
	"sort"

	"github.com/rturnbull/otcdesk/internal/model"
)

// ClientOptions collects the distinct clients named by the risk limit
// catalog as (id, name) pairs, alphabetically sorted by name. Rules with
// no client scope are skipped; when names disagree for one id, the
// last-seen name wins.
func ClientOptions(limits []model.RiskLimitRule) []model.OptionItem {
	names := make(map[int]string)
	for _, l := range limits {
		if l.ClientID != 0 && l.ClientName != "" {
			names[l.ClientID] = l.ClientName
		}
	}
	return sortedOptions(names)
}

// InstrumentOptions collects the distinct instruments named by the risk
// limit catalog, alphabetically sorted by symbol. Rules with no
// instrument scope are skipped.
func InstrumentOptions(limits []model.RiskLimitRule) []model.OptionItem {
	names := make(map[int]string)
	for _, l := range limits {
		if l.InstrumentID != 0 && l.Symbol != "" {
			names[l.InstrumentID] = l.Symbol
		}
	}
	return sortedOptions(names)
}

func sortedOptions(names map[int]string) []model.OptionItem {
	options := make([]model.OptionItem, 0, len(names))
	for id, name := range names {
		options = append(options, model.OptionItem{ID: id, Name: name})
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].Name != options[j].Name {
			return options[i].Name < options[j].Name
		}
		return options[i].ID < options[j].ID
	})
	return options
}
