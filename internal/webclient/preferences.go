package webclient

import (
	"context"
	"fmt"

	"campfire/internal/shared/util"
)

// PreferencesPanel lists the restaurants a user has seen and saves each
// toggle as soon as it is made.
type PreferencesPanel struct {
	Backend Backend
	Panel[RestaurantPreference]
}

func NewPreferencesPanel(b Backend) *PreferencesPanel {
	return &PreferencesPanel{Backend: b}
}

// Open loads the panel for name. Without a name the panel asks for one.
func (p *PreferencesPanel) Open(ctx context.Context, name string) error {
	name = util.SanitizeName(name)
	if name == "" {
		p.needName()
		return nil
	}
	return p.Load(ctx, func(ctx context.Context) ([]RestaurantPreference, error) {
		return p.Backend.UserPreferences(ctx, name)
	})
}

// Toggle records a new preference locally and persists it right away.
func (p *PreferencesPanel) Toggle(ctx context.Context, name string, restaurantID int64, pref Preference) error {
	name = util.SanitizeName(name)
	if name == "" {
		return &AlertError{Message: msgNameFirst, Err: ErrNameRequired}
	}
	if restaurantID <= 0 || !pref.Valid() {
		return fmt.Errorf("invalid preference %q for restaurant %d", pref, restaurantID)
	}
	p.update(func(items []RestaurantPreference) {
		for i := range items {
			if items[i].ID == restaurantID {
				items[i].Preference = pref
			}
		}
	})
	if err := p.Backend.SavePreferences(ctx, name, []PreferenceUpdate{{RestaurantID: restaurantID, Preference: pref}}); err != nil {
		return alert(err)
	}
	return nil
}
