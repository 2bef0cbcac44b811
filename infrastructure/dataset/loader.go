// Package dataset carrega o export de vendas (CSV) para a memória.
package dataset

import (
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Load lê o export de vendas do caminho informado. O arquivo é fechado assim
// que a leitura termina; nenhum recurso fica retido após o retorno.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrap(err, "abrindo o export de vendas")
	}
	defer f.Close()

	return Read(f)
}

// Read materializa o CSV em um DataFrame com todas as colunas textuais.
// A tipagem é decidida depois, coluna a coluna, pela normalização.
func Read(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "lendo o export de vendas")
	}

	logrus.WithFields(logrus.Fields{
		"rows":    df.Nrow(),
		"columns": df.Ncol(),
	}).Debug("Export de vendas carregado em memória")

	return df, nil
}
