package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{port: 8080, database: "gambit.db"}, false},
		{"port too low", Config{port: 0, database: "gambit.db"}, true},
		{"port too high", Config{port: 70000, database: "gambit.db"}, true},
		{"missing database", Config{port: 8080}, true},
		{"cert without key", Config{port: 8080, database: "gambit.db", tlsCert: "cert.pem"}, true},
		{"key without cert", Config{port: 8080, database: "gambit.db", tlsKey: "key.pem"}, true},
		{"cert and key", Config{port: 8080, database: "gambit.db", tlsCert: "cert.pem", tlsKey: "key.pem"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	assert.Equal(t, "http", (&Config{}).scheme())
	assert.Equal(t, "https", (&Config{tlsCert: "cert.pem", tlsKey: "key.pem"}).scheme())
}
