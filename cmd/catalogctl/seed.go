package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/application/usecase"
	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
	"github.com/jhoicas/Farmacias-api/internal/domain/validation"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/store"
)

var (
	seedOwnerEmail string
	seedFile       string
	seedLatin1     bool
)

var seedMedicinesCmd = &cobra.Command{
	Use:   "seed-medicines",
	Short: "Carga medicamentos desde un CSV (name,generic_name,form,strength,description)",
	Long: `Carga medicamentos a nombre de un usuario existente.

La primera fila es la cabecera. Las filas inválidas y los duplicados se cuentan y se omiten.
Con --latin1 el archivo se decodifica como ISO-8859-1 (exportaciones de hojas de cálculo antiguas).`,
	RunE: runSeedMedicines,
}

func init() {
	seedMedicinesCmd.Flags().StringVar(&seedOwnerEmail, "owner-email", "", "email del usuario creador (obligatorio)")
	seedMedicinesCmd.Flags().StringVar(&seedFile, "file", "", "ruta del CSV (obligatorio)")
	seedMedicinesCmd.Flags().BoolVar(&seedLatin1, "latin1", false, "decodificar el CSV como ISO-8859-1")
	_ = seedMedicinesCmd.MarkFlagRequired("owner-email")
	_ = seedMedicinesCmd.MarkFlagRequired("file")
}

func runSeedMedicines(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := seedMedicines(ctx, st.Repos, seedOwnerEmail, f, seedLatin1)
	if err != nil {
		return err
	}
	log.Info().
		Int("created", res.Created).
		Int("duplicates", res.Duplicates).
		Int("invalid", res.Invalid).
		Msg("carga de medicamentos terminada")
	return nil
}

type seedResult struct {
	Created    int
	Duplicates int
	Invalid    int
}

// seedMedicines crea los medicamentos del CSV a través del caso de uso, con las mismas validaciones que la API.
func seedMedicines(ctx context.Context, repos repository.Repositories, ownerEmail string, r io.Reader, latin1 bool) (seedResult, error) {
	var res seedResult
	owner, err := repos.Users.GetByEmail(ctx, validation.NormalizeEmail(ownerEmail))
	if err != nil {
		return res, err
	}
	if owner == nil {
		return res, fmt.Errorf("usuario %q: %w", ownerEmail, domain.ErrNotFound)
	}

	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if _, err := reader.Read(); err != nil {
		return res, fmt.Errorf("leer cabecera: %w", err)
	}

	uc := usecase.NewMedicineUseCase(repos.Medicines, repos.Inventory)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			res.Invalid++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("leer CSV: %w", err)
		}
		if len(record) < 4 {
			res.Invalid++
			continue
		}
		in := dto.MedicineRequest{
			Name:        record[0],
			GenericName: record[1],
			Form:        record[2],
			Strength:    record[3],
		}
		if len(record) > 4 {
			in.Description = strings.TrimSpace(record[4])
		}
		_, err = uc.Create(ctx, owner.ID, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrDuplicate):
			res.Duplicates++
		case errors.Is(err, domain.ErrInvalidInput):
			res.Invalid++
		default:
			return res, err
		}
	}
	return res, nil
}
