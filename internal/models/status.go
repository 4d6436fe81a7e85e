package models

// Convenção de status textual usada em todo o sistema.
const (
	// Pagamento (vendas e parcelas)
	StatusPendente = "Pendente"
	StatusParcial  = "Parcial"
	StatusPago     = "Pago"

	// Panos
	PanoAtivo     = "Ativo"
	PanoDevolvido = "Devolvido"

	// Garantias
	GarantiaPendente  = "Pendente"
	GarantiaAprovada  = "Aprovada"
	GarantiaConcluida = "Concluida"
	GarantiaRejeitada = "Rejeitada"

	// Tipos de garantia
	TipoTroca     = "Troca"
	TipoDevolucao = "Devolucao"

	// Vouchers
	VoucherAtivo     = "Ativo"
	VoucherUtilizado = "Utilizado"
	VoucherExpirado  = "Expirado"

	// Descontos
	DescontoPercentual = "percentual"
	DescontoFixo       = "fixo"
)
