package config

import (
	"os"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

// saveEnvVars saves the original values of the given environment variable keys.
func saveEnvVars(vars map[string]string) (map[string]string, map[string]bool) {
	orig := make(map[string]string)
	origSet := make(map[string]bool)

	for k := range vars {
		if oldVal, exists := os.LookupEnv(k); exists {
			orig[k] = oldVal
			origSet[k] = true
		}
	}

	return orig, origSet
}

// applyEnvVars applies the environment variables from the vars map.
func applyEnvVars(vars map[string]string) {
	for k, v := range vars {
		if v == "" {
			os.Unsetenv(k)
		} else {
			os.Setenv(k, v)
		}
	}
}

// restoreEnvVars restores the original environment variable values.
func restoreEnvVars(orig map[string]string, origSet map[string]bool) {
	for k := range orig {
		if origSet[k] {
			os.Setenv(k, orig[k])
		} else {
			os.Unsetenv(k)
		}
	}
}

// withEnv sets environment variables for the duration of fn and restores them after.
func withEnv(t *testing.T, vars map[string]string, fn func(t *testing.T)) {
	t.Helper()
	orig, origSet := saveEnvVars(vars)
	applyEnvVars(vars)

	defer restoreEnvVars(orig, origSet)

	fn(t)
}

func TestConnectRedis_Disabled(t *testing.T) {
	SetRedisClientForTest(nil)
	withEnv(t, map[string]string{"REDIS_ENABLED": "false", "APPENV": ""}, func(t *testing.T) {
		rdb, err := ConnectRedis()
		assert.NoError(t, err)
		assert.Nil(t, rdb)
	})
}

func TestConnectRedis_DefaultValues(t *testing.T) {
	SetRedisClientForTest(nil)
	withEnv(t, map[string]string{"REDIS_ENABLED": "", "REDIS_ADDR": "", "REDIS_PASS": "", "REDIS_DB": ""}, func(t *testing.T) {
		// Disabled unless explicitly enabled
		rdb, err := ConnectRedis()
		assert.NoError(t, err)
		assert.Nil(t, rdb)
	})
}

func TestConnectRedis_SkippedInTestEnv(t *testing.T) {
	SetRedisClientForTest(nil)
	withEnv(t, map[string]string{"REDIS_ENABLED": "true", "APPENV": "test"}, func(t *testing.T) {
		rdb, err := ConnectRedis()
		assert.NoError(t, err)
		assert.Nil(t, rdb)
	})
}

func TestConnectRedis_InvalidAddress(t *testing.T) {
	SetRedisClientForTest(nil)
	withEnv(t, map[string]string{"REDIS_ENABLED": "true", "APPENV": "", "REDIS_ADDR": "127.0.0.1:1", "REDIS_DB": "invalid"}, func(t *testing.T) {
		rdb, err := ConnectRedis()
		assert.Error(t, err)
		assert.Nil(t, rdb)
		assert.Nil(t, GetRedisClient())
	})
}

func TestConnectRedis_ReturnsInjectedClient(t *testing.T) {
	client, _ := redismock.NewClientMock()
	SetRedisClientForTest(client)
	t.Cleanup(func() { SetRedisClientForTest(nil) })

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Same(t, client, rdb)
	assert.Same(t, client, GetRedisClient())
}

func TestConnectRedis_ConcurrentCalls(t *testing.T) {
	SetRedisClientForTest(nil)
	withEnv(t, map[string]string{"REDIS_ENABLED": "false"}, func(t *testing.T) {
		type callResult struct {
			rdb interface{}
			err error
		}
		done := make(chan callResult, 5)
		for i := 0; i < 5; i++ {
			go func() {
				rdb, err := ConnectRedis()
				done <- callResult{rdb: rdb, err: err}
			}()
		}

		// Wait for all goroutines to complete and assert in the main goroutine
		for i := 0; i < 5; i++ {
			res := <-done
			assert.NoError(t, res.err)
			assert.Nil(t, res.rdb)
		}
	})
}
