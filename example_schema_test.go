package sjparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// These mirror the six walkthrough scenarios used to design the engine: a
// bare scalar, an object with a defaulted optional member, unknown-key
// tolerance, ordered storing-array accumulation, a map with a per-element
// callback, and validator-driven rejection.
func TestScenarioS1_BareScalar(t *testing.T) {
	v := NewValue[int64]()
	p := New(v)
	require := assert.New(t)
	require.NoError(p.Parse([]byte("123")))
	require.NoError(p.Finish())
	require.Equal(int64(123), v.Get())
}

func TestScenarioS2_ObjectWithDefault(t *testing.T) {
	name := NewValue[string]()
	qty := NewValue[int64]()
	root := NewObject([]MemberSpec{
		Required("name", name),
		DefaultValue("qty", qty, 1),
	})
	p := New(root)
	a := assert.New(t)
	a.NoError(p.Parse([]byte(`{"name":"widget"}`)))
	a.NoError(p.Finish())
	a.Equal("widget", name.Get())
	a.Equal(int64(1), qty.Get())
}

func TestScenarioS3_UnknownKeyIgnored(t *testing.T) {
	name := NewValue[string]()
	root := NewObject([]MemberSpec{Required("name", name)}, IgnoreUnknownKeys())
	p := New(root)
	a := assert.New(t)
	a.NoError(p.Parse([]byte(`{"name":"widget","trace_id":"ignored-value","meta":{"a":[1,2,3]}}`)))
	a.NoError(p.Finish())
	a.Equal("widget", name.Get())
}

func TestScenarioS4_StoringArrayOrder(t *testing.T) {
	sa := NewStoringArray[int64](NewValue[int64]())
	p := New(sa)
	a := assert.New(t)
	a.NoError(p.Parse([]byte("[5,3,3,1]")))
	a.NoError(p.Finish())
	a.Equal([]int64{5, 3, 3, 1}, sa.Get())
}

func TestScenarioS5_MapElementCallback(t *testing.T) {
	totals := map[string]int64{}
	sm := NewStoringMap[int64](NewValue[int64](), OnStoringMapElement(func(key string, value int64) error {
		totals[key] = value
		return nil
	}))
	p := New(sm)
	a := assert.New(t)
	a.NoError(p.Parse([]byte(`{"eur":100,"usd":120}`)))
	a.NoError(p.Finish())
	a.Equal(int64(100), totals["eur"])
	a.Equal(int64(120), totals["usd"])
}

func TestScenarioS6_ValidatorRejection(t *testing.T) {
	age := NewValue[int64](WithValidator(func(n int64) error {
		if n < 0 {
			return errors.New("age must not be negative")
		}
		return nil
	}))
	root := NewObject([]MemberSpec{Required("age", age)})
	p := New(root)
	err := p.Parse([]byte(`{"age":-5}`))
	assert.ErrorIs(t, err, ErrValidationRejected)
	// Once a leaf validator rejects, the whole parse fails and no further
	// member should be touched; confirm the parser refuses to continue.
	assert.Error(t, p.Parse([]byte("more")))
}
