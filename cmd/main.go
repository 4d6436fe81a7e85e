package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/atelie-prata/api-revenda/internal/auth"
	"github.com/atelie-prata/api-revenda/internal/categoria"
	"github.com/atelie-prata/api-revenda/internal/cliente"
	"github.com/atelie-prata/api-revenda/internal/config"
	"github.com/atelie-prata/api-revenda/internal/garantia"
	"github.com/atelie-prata/api-revenda/internal/infra/logger"
	"github.com/atelie-prata/api-revenda/internal/infra/metrics"
	"github.com/atelie-prata/api-revenda/internal/item"
	"github.com/atelie-prata/api-revenda/internal/ocr"
	"github.com/atelie-prata/api-revenda/internal/pano"
	"github.com/atelie-prata/api-revenda/internal/parcela"
	"github.com/atelie-prata/api-revenda/internal/relatorio"
	"github.com/atelie-prata/api-revenda/internal/usuario"
	"github.com/atelie-prata/api-revenda/internal/utils/db"
	"github.com/atelie-prata/api-revenda/internal/venda"
	"github.com/atelie-prata/api-revenda/internal/voucher"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	caminho := os.Getenv("CONFIG_PATH")
	if caminho == "" {
		caminho = "config.yaml"
	}
	cfg, err := config.Load(caminho)
	if err != nil {
		log.Fatal("Erro ao carregar configuração:", err)
	}

	slog.SetDefault(logger.New(cfg.App.Env))
	auth.Init(cfg.Auth.JWTSecret)

	conn, err := db.ConnectDataBase(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := conn.AutoMigrate(
		&usuario.Usuario{},
		&cliente.Cliente{},
		&categoria.Categoria{},
		&pano.Pano{},
		&item.Item{},
		&venda.Venda{},
		&venda.ItemVenda{},
		&parcela.Parcela{},
		&garantia.Garantia{},
		&voucher.Voucher{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Repositórios
	usuarioRepo := usuario.NewRepository(conn)
	clienteRepo := cliente.NewRepository(conn)
	categoriaRepo := categoria.NewRepository(conn)
	panoRepo := pano.NewRepository(conn)
	itemRepo := item.NewRepository(conn)
	vendaRepo := venda.NewRepository(conn)
	parcelaRepo := parcela.NewRepository(conn)
	garantiaRepo := garantia.NewRepository(conn)
	voucherRepo := voucher.NewRepository(conn)
	relatorioRepo := relatorio.NewRepository(conn)

	// Handlers
	usuarioHandler := usuario.NewHandler(usuarioRepo)
	clienteHandler := cliente.NewHandler(clienteRepo)
	categoriaHandler := categoria.NewHandler(categoriaRepo)
	panoHandler := pano.NewHandler(panoRepo)
	itemHandler := item.NewHandler(itemRepo, ocr.NewClient(cfg.OCR.URL, cfg.OCR.Token))
	vendaHandler := venda.NewHandler(conn, vendaRepo, clienteRepo, itemRepo, parcelaRepo)
	parcelaHandler := parcela.NewHandler(parcelaRepo)
	garantiaHandler := garantia.NewHandler(conn, garantiaRepo, itemRepo, voucherRepo)
	voucherHandler := voucher.NewHandler(voucherRepo)
	relatorioHandler := relatorio.NewHandler(relatorioRepo)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de usuários (somente administradores)
	adm := api.NewRoute().Subrouter()
	adm.Use(auth.RequireAdmin)
	adm.HandleFunc("/usuarios", usuarioHandler.Criar).Methods("POST")
	adm.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	adm.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	adm.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	adm.HandleFunc("/usuarios/{id}", usuarioHandler.Deletar).Methods("DELETE")

	// Rotas de clientes
	api.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	api.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/clientes/{id}", clienteHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/clientes/{id}/vendas-para-garantia", garantiaHandler.VendasParaGarantia).Methods("GET")

	// Rotas de categorias
	api.HandleFunc("/categorias", categoriaHandler.Criar).Methods("POST")
	api.HandleFunc("/categorias", categoriaHandler.Listar).Methods("GET")
	api.HandleFunc("/categorias/{id}", categoriaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/categorias/{id}", categoriaHandler.Deletar).Methods("DELETE")

	// Rotas de panos
	api.HandleFunc("/panos", panoHandler.Criar).Methods("POST")
	api.HandleFunc("/panos", panoHandler.Listar).Methods("GET")
	api.HandleFunc("/panos/{id}", panoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/panos/{id}", panoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/panos/{id}/devolver", panoHandler.Devolver).Methods("PATCH")
	api.HandleFunc("/panos/{id}", panoHandler.Deletar).Methods("DELETE")

	// Rotas de itens
	api.HandleFunc("/panos/{id}/itens", itemHandler.Criar).Methods("POST")
	api.HandleFunc("/panos/{id}/itens", itemHandler.Listar).Methods("GET")
	api.HandleFunc("/panos/{id}/itens/ocr", itemHandler.ProcessarImagem).Methods("POST")
	api.HandleFunc("/panos/{id}/itens/lote", itemHandler.CriarEmLote).Methods("POST")
	api.HandleFunc("/itens/{id}", itemHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/itens/{id}", itemHandler.Deletar).Methods("DELETE")

	// Rotas de vendas
	api.HandleFunc("/vendas", vendaHandler.Criar).Methods("POST")
	api.HandleFunc("/vendas", vendaHandler.Listar).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/vendas/{id}", vendaHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/vendas/{id}/parcelas", parcelaHandler.ListarPorVenda).Methods("GET")

	// Rotas de parcelas
	api.HandleFunc("/parcelas", parcelaHandler.Listar).Methods("GET")
	api.HandleFunc("/parcelas/{id}/status", parcelaHandler.AtualizarStatus).Methods("PATCH")

	// Rotas de garantias
	api.HandleFunc("/garantias", garantiaHandler.Criar).Methods("POST")
	api.HandleFunc("/garantias", garantiaHandler.Listar).Methods("GET")
	api.HandleFunc("/garantias/{id}", garantiaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/garantias/{id}/status", garantiaHandler.AtualizarStatus).Methods("PATCH")

	// Rotas de vouchers
	api.HandleFunc("/vouchers", voucherHandler.Listar).Methods("GET")
	api.HandleFunc("/vouchers/{codigo}", voucherHandler.BuscarPorCodigo).Methods("GET")
	api.HandleFunc("/vouchers/{codigo}/utilizar", voucherHandler.Utilizar).Methods("POST")

	// Rotas de relatórios
	api.HandleFunc("/relatorios/vendas.csv", relatorioHandler.VendasCSV).Methods("GET")
	api.HandleFunc("/relatorios/vendas.xlsx", relatorioHandler.VendasXLSX).Methods("GET")
	api.HandleFunc("/relatorios/catalogo", relatorioHandler.Catalogo).Methods("GET")
	api.HandleFunc("/dashboard/resumo", relatorioHandler.Resumo).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	slog.Info("servidor iniciado", "addr", cfg.HTTP.Addr)
	log.Fatal(http.ListenAndServe(cfg.HTTP.Addr, c.Handler(r)))
}
