package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Field1 string `json:"field1" yaml:"field1"`
	Field2 bool   `json:"field2" yaml:"field2"`
	Inner  struct {
		Depth int `json:"depth" yaml:"depth-level"`
	} `json:"inner" yaml:"inner"`
}

func init() {
	RegisterConfigCreator("test", func() interface{} {
		c := &testStruct{Field1: "default"}
		c.Inner.Depth = 3
		return c
	})
}

func TestJSONConfig(t *testing.T) {
	data := []byte(`{"field2": true, "inner": {"depth": 7}}`)
	ctx, err := WithJSONConfig(context.Background(), data)
	require.NoError(t, err)
	c := FromContext(ctx, "test").(*testStruct)
	assert.Equal(t, "default", c.Field1)
	assert.True(t, c.Field2)
	assert.Equal(t, 7, c.Inner.Depth)
}

func TestYAMLConfig(t *testing.T) {
	data := []byte("field1: hello\ninner:\n  depth-level: 9\n")
	ctx, err := WithYAMLConfig(context.Background(), data)
	require.NoError(t, err)
	c := FromContext(ctx, "test").(*testStruct)
	assert.Equal(t, "hello", c.Field1)
	assert.False(t, c.Field2)
	assert.Equal(t, 9, c.Inner.Depth)
}

func TestBadConfig(t *testing.T) {
	_, err := WithJSONConfig(context.Background(), []byte("{"))
	assert.Error(t, err)
	_, err = WithYAMLConfig(context.Background(), []byte("field2: [1"))
	assert.Error(t, err)
}

func TestMissingConfig(t *testing.T) {
	assert.Nil(t, FromContext(context.Background(), "absent"))
}
