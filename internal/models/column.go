package models

// Títulos canônicos das etapas do fluxo de aprovação. São dados de
// configuração do grupo, não um enum: grupos podem ter colunas extras.
const (
	ColumnPendingApproval = "Para aprovação"
	ColumnInProduction    = "Em Produção"
	ColumnApproved        = "Aprovado"
	ColumnNeedsEdit       = "Editar"
)

// CanonicalColumns is the default column set seeded into every new group,
// in board order.
var CanonicalColumns = []string{
	ColumnInProduction,
	ColumnPendingApproval,
	ColumnNeedsEdit,
	ColumnApproved,
}

// Column is a workflow stage inside a group. A task's column_id is the sole
// encoding of its workflow state.
type Column struct {
	ID       int64  `json:"id"`
	GroupID  int64  `json:"group_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}
