package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvSetVariable(t *testing.T) {
	t.Setenv("ANALYZER_TEST_KEY", "sk-abc123")

	out := ExpandEnv([]byte("api_keys:\n  anthropic: ${ANALYZER_TEST_KEY}\n"))
	assert.Equal(t, "api_keys:\n  anthropic: sk-abc123\n", string(out))
}

func TestExpandEnvUnsetVariableBecomesEmpty(t *testing.T) {
	out := ExpandEnv([]byte("key: ${ANALYZER_DEFINITELY_UNSET_VAR}"))
	assert.Equal(t, "key: ", string(out))
}

func TestExpandEnvDefaultValue(t *testing.T) {
	out := ExpandEnv([]byte("host: ${ANALYZER_DB_HOST:-localhost}"))
	assert.Equal(t, "host: localhost", string(out))
}

func TestExpandEnvSetVariableBeatsDefault(t *testing.T) {
	t.Setenv("ANALYZER_DB_HOST", "db.internal")

	out := ExpandEnv([]byte("host: ${ANALYZER_DB_HOST:-localhost}"))
	assert.Equal(t, "host: db.internal", string(out))
}

func TestExpandEnvLeavesBareDollarAlone(t *testing.T) {
	in := []byte(`pattern: "^secret.*$"` + "\npassword: p@ss$word\n")
	assert.Equal(t, in, ExpandEnv(in))
}

func TestExpandEnvMultipleReferences(t *testing.T) {
	t.Setenv("H", "db")
	t.Setenv("P", "5432")

	out := ExpandEnv([]byte("dsn: ${H}:${P}"))
	assert.Equal(t, "dsn: db:5432", string(out))
}
