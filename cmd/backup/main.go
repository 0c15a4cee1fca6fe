// backup crea, lista y restaura snapshots sin levantar el servidor HTTP.
//
// Uso:
//
//	go run ./cmd/backup create
//	go run ./cmd/backup list
//	go run ./cmd/backup restore <ruta/backup-....json>
//
// Usa la misma configuración que la API (DATA_DIR, STORE_DRIVER, BACKUP_DIR).
// No ejecutar mientras la API está en marcha: el almacén admite un solo escritor.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/gestor-notas/internal/application/backup"
	"github.com/jhoicas/gestor-notas/internal/application/records"
	"github.com/jhoicas/gestor-notas/internal/infrastructure/storage"
	"github.com/jhoicas/gestor-notas/pkg/config"
	"github.com/jhoicas/gestor-notas/pkg/logger"
)

const usage = "uso: backup create | backup list | backup restore <ruta>"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	os.Exit(run(cfg.Store, os.Args[1:], os.Stdout, os.Stderr, log))
}

// run ejecuta el subcomando y devuelve el código de salida.
func run(cfg config.StoreConfig, args []string, stdout, stderr io.Writer, log *logger.Logger) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	stores, err := storage.Open(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Abrir almacenes: %v\n", err)
		return 1
	}
	defer stores.Close()

	store, err := records.Open(stores.Customers, stores.Invoices, records.Options{Logger: log})
	if err != nil {
		fmt.Fprintf(stderr, "Abrir clientes y notas: %v\n", err)
		return 1
	}
	mgr := backup.NewManager(store, cfg.BackupDir, backup.Options{Logger: log})

	switch args[0] {
	case "create":
		path, err := mgr.CreateSnapshot()
		if err != nil {
			fmt.Fprintf(stderr, "Crear snapshot: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, path)
	case "list":
		list, err := mgr.ListSnapshots()
		if err != nil {
			fmt.Fprintf(stderr, "Listar snapshots: %v\n", err)
			return 1
		}
		for _, s := range list {
			fmt.Fprintf(stdout, "%s\t%d\n", s.Path, s.Size)
		}
	case "restore":
		if len(args) < 2 {
			fmt.Fprintln(stderr, usage)
			return 2
		}
		if err := mgr.RestoreSnapshot(args[1]); err != nil {
			fmt.Fprintf(stderr, "Restaurar snapshot: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "restaurado: %d clientes, %d notas\n", len(store.ListCustomers()), len(store.ListInvoices()))
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}
	return 0
}
