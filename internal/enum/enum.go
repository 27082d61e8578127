package enum

// ── Access control roles ──

const (
	UserRoleAdmin   = "ADMIN"
	UserRoleCaixa   = "CAIXA"
	UserRoleCozinha = "COZINHA"
)

// ── Settings keys (rows in the settings table) ──

const (
	SettingOrderGrouping = "order_grouping"
)
