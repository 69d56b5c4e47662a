package config

import (
	"errors"
	"github.com/Jeffail/gabs/v2"
)

type Config struct {
	Version        string `json:"version"`
	FEPath         string `json:"frontend_path"`
	Dsn            string `json:"dsn"`
	Port           string `json:"port"`
	StoreTimeout   int    `json:"store_timeout_seconds"`
	CharacterLimit int    `json:"character_limit"`
	LogLimit       int    `json:"log_limit"`
}

func Read(path string) (*Config, error) {
	parsed, err := gabs.ParseJSONFile(path)
	if err != nil {
		return nil, err
	}

	dsn, ok := parsed.Path("db.dsn").Data().(string)
	if !ok {
		return nil, errors.New("error dsn cast to string")
	}

	timeout, ok := parsed.Path("db.timeout_seconds").Data().(float64)
	if !ok {
		return nil, errors.New("error store timeout cast to number")
	}

	port, ok := parsed.Path("port").Data().(string)
	if !ok {
		return nil, errors.New("error port cast to string")
	}

	fe, ok := parsed.Path("frontend_path").Data().(string)
	if !ok {
		return nil, errors.New("error frontend path cast to string")
	}

	version, ok := parsed.Path("version").Data().(string)
	if !ok {
		return nil, errors.New("error version cast to string")
	}

	charLimit, ok := parsed.Path("query.character_limit").Data().(float64)
	if !ok {
		return nil, errors.New("error character limit cast to number")
	}

	logLimit, ok := parsed.Path("query.log_limit").Data().(float64)
	if !ok {
		return nil, errors.New("error log limit cast to number")
	}

	return &Config{
		Dsn:            dsn,
		Port:           port,
		FEPath:         fe,
		Version:        version,
		StoreTimeout:   int(timeout),
		CharacterLimit: int(charLimit),
		LogLimit:       int(logLimit),
	}, nil
}
