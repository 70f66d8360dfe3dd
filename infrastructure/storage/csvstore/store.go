// Package csvstore guarda a base de registros diários em um arquivo CSV
package csvstore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/north-star-api/internal/domain"
)

// Store lê e grava registros em um caminho fixo
type Store struct {
	path string
}

// New cria um Store para o caminho informado
func New(path string) *Store {
	return &Store{path: path}
}

// Path retorna o caminho do arquivo
func (s *Store) Path() string {
	return s.path
}

// Load carrega os registros brutos. Se o arquivo não existir, nada é lido e o erro
// embrulha domain.ErrMissingSourceFile.
func (s *Store) Load(ctx context.Context) (domain.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(domain.ErrMissingSourceFile,
				"o arquivo %s não existe. Execute `northstar ingest` primeiro", s.path)
		}
		return nil, errors.Wrapf(err, "erro ao acessar %s", s.path)
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir %s", s.path)
	}
	defer file.Close()

	records, err := Decode(file)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":    s.path,
		"records": len(records),
	}).Debug("csvstore: registros carregados")

	return records, nil
}

// Save grava os registros brutos, substituindo o arquivo de forma atômica
func (s *Store) Save(ctx context.Context, records domain.RecordSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeAtomic(s.path, records, false)
}

// WriteProcessed grava os registros com as colunas de KPI em outro arquivo
func WriteProcessed(path string, records domain.RecordSet) error {
	return writeAtomic(path, records, true)
}

func writeAtomic(path string, records domain.RecordSet, withKPIs bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".northstar-*.csv")
	if err != nil {
		return errors.Wrap(err, "erro ao criar arquivo temporário")
	}
	tmpName := tmp.Name()

	if err := Encode(tmp, records, withKPIs); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "erro ao fechar arquivo temporário")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "erro ao mover arquivo para %s", path)
	}

	return nil
}
