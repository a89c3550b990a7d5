package access

// NavLink is one entry in the dashboard side navigation.
type NavLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// Navigation is the ordered dashboard menu.
type Navigation []NavLink

// DefaultNavigation returns the dashboard menu.
func DefaultNavigation() Navigation {
	return Navigation{
		{Name: "Home", Href: "/dashboard"},
		{Name: "Invoices", Href: "/dashboard/invoices"},
		{Name: "Customers", Href: "/dashboard/customers"},
	}
}

// Active returns the href of the link matching path exactly, or "".
func (n Navigation) Active(path string) string {
	for _, l := range n {
		if l.Href == path {
			return l.Href
		}
	}
	return ""
}
