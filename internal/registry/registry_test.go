package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ibcompose/internal/models"
)

func uikit() []*models.ClassRecord {
	return []*models.ClassRecord{
		{Name: "apple/NSObject", NativeClassBinding: "NSObject", Library: "ObjectiveC"},
		{Name: "apple/uikit/UIResponder", SuperName: "apple/NSObject", NativeClassBinding: "UIResponder", Library: "UIKit"},
		{Name: "apple/uikit/UIViewController", SuperName: "apple/uikit/UIResponder", NativeClassBinding: "UIViewController", Library: "UIKit"},
		{Name: "apple/uikit/UIEvent", SuperName: "apple/NSObject", NativeClassBinding: "UIEvent", Library: "UIKit"},
		{Name: "apple/uikit/protocol/UITableViewDelegate", NativeProtocolName: "UITableViewDelegate", Library: "UIKit"},
		{Name: "apple/mapkit/protocol/MKMapViewDelegate", NativeProtocolName: "MKMapViewDelegate", NativeProtocolSourceName: "MKMapViewDelegateSource", Library: "MapKit"},
	}
}

func newRegistry(extra ...*models.ClassRecord) *Registry {
	reg := New()
	reg.AddAll(uikit())
	reg.AddAll(extra)
	return reg
}

func TestRegistry_GetMissing(t *testing.T) {
	reg := New()
	rc, ok := reg.Get("com/acme/Nope")
	assert.False(t, ok)
	assert.Nil(t, rc)
}

func TestRegistry_GetIsCached(t *testing.T) {
	reg := newRegistry()
	a, ok := reg.Get("apple/uikit/UIEvent")
	require.True(t, ok)
	b, _ := reg.Get("apple/uikit/UIEvent")
	assert.Same(t, a, b)
}

func TestRegistry_LastWriteWinsKeepsPosition(t *testing.T) {
	reg := New()
	reg.Add(&models.ClassRecord{Name: "a", NativeClassName: "First"})
	reg.Add(&models.ClassRecord{Name: "b"})
	before, _ := reg.Get("a")
	reg.Add(&models.ClassRecord{Name: "a", NativeClassName: "Second"})

	assert.Equal(t, []string{"a", "b"}, reg.Names())
	assert.Equal(t, 2, reg.Len())

	rc, ok := reg.Get("a")
	require.True(t, ok)
	assert.NotSame(t, before, rc)
	name, _ := rc.BindingTypeName()
	assert.Equal(t, "Second", name)
}

func TestRegistry_ResolveVisitsAllInOrder(t *testing.T) {
	reg := newRegistry(&models.ClassRecord{Name: "com/acme/Plain", SuperName: "java/lang/Object"})

	var names []string
	reg.Resolve(func(name string, rc *ResolvedClass) {
		assert.Equal(t, name, rc.Record.Name)
		names = append(names, name)
	})

	expected := append([]string{}, reg.Names()...)
	assert.Equal(t, expected, names)
	assert.Contains(t, names, "com/acme/Plain", "classes without bindings are offered too")
}

func TestResolvedClass_BindingTypeName(t *testing.T) {
	tests := []struct {
		name     string
		record   models.ClassRecord
		expected string
		valid    bool
	}{
		{"binding", models.ClassRecord{Name: "x", NativeClassBinding: "UIButton"}, "UIButton", true},
		{"class name", models.ClassRecord{Name: "x", NativeClassName: "MyView"}, "MyView", true},
		{"binding wins", models.ClassRecord{Name: "x", NativeClassName: "MyView", NativeClassBinding: "UIView"}, "UIView", true},
		{"neither", models.ClassRecord{Name: "x"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			rec := tt.record
			reg.Add(&rec)
			rc, _ := reg.Get("x")

			name, ok := rc.BindingTypeName()
			assert.Equal(t, tt.expected, name)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.valid, rc.IsValidNativeType())
		})
	}
}

func TestResolvedClass_SuperNativeName(t *testing.T) {
	reg := newRegistry(
		&models.ClassRecord{Name: "com/acme/Base", SuperName: "apple/uikit/UIViewController"},
		&models.ClassRecord{Name: "com/acme/Main", SuperName: "com/acme/Base", NativeClassName: "Main"},
		&models.ClassRecord{Name: "com/acme/Orphan", SuperName: "com/external/Missing", NativeClassName: "Orphan"},
		&models.ClassRecord{Name: "com/acme/Root", NativeClassName: "Root"},
		&models.ClassRecord{Name: "com/acme/Plain", SuperName: "com/acme/PlainRoot"},
		&models.ClassRecord{Name: "com/acme/PlainRoot"},
		&models.ClassRecord{Name: "com/acme/OnPlain", SuperName: "com/acme/Plain", NativeClassName: "OnPlain"},
		&models.ClassRecord{Name: "com/acme/LoopA", SuperName: "com/acme/LoopB"},
		&models.ClassRecord{Name: "com/acme/LoopB", SuperName: "com/acme/LoopA"},
		&models.ClassRecord{Name: "com/acme/OnLoop", SuperName: "com/acme/LoopA", NativeClassName: "OnLoop"},
	)

	tests := []struct {
		class    string
		expected SuperResolution
	}{
		{"com/acme/Main", SuperResolution{Kind: SuperFound, NativeName: "UIViewController"}},
		{"com/acme/Orphan", SuperResolution{Kind: SuperUnresolved, Missing: "com/external/Missing"}},
		{"com/acme/Root", SuperResolution{Kind: SuperRoot}},
		{"com/acme/OnPlain", SuperResolution{Kind: SuperUnresolved}},
		{"com/acme/OnLoop", SuperResolution{Kind: SuperUnresolved}},
		{"apple/uikit/UIViewController", SuperResolution{Kind: SuperFound, NativeName: "UIResponder"}},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			rc, ok := reg.Get(tt.class)
			require.True(t, ok)
			res := rc.SuperNativeName()
			assert.Equal(t, tt.expected, res)
			assert.Equal(t, res, rc.SuperNativeName(), "resolution is stable")
		})
	}
}

func TestSuperResolution_Found(t *testing.T) {
	name, ok := SuperResolution{Kind: SuperFound, NativeName: "UIView"}.Found()
	assert.True(t, ok)
	assert.Equal(t, "UIView", name)

	_, ok = SuperResolution{Kind: SuperUnresolved, Missing: "x"}.Found()
	assert.False(t, ok)
	assert.Equal(t, "unresolved", SuperUnresolved.String())
}

func TestRegistry_Libraries(t *testing.T) {
	reg := newRegistry(
		&models.ClassRecord{
			Name:            "com/acme/Map",
			SuperName:       "apple/uikit/UIViewController",
			NativeClassName: "Map",
			SuperInterfaces: []string{
				"com/external/Unknown",
				"apple/mapkit/protocol/MKMapViewDelegate",
				"apple/uikit/protocol/UITableViewDelegate",
			},
		},
		&models.ClassRecord{Name: "com/acme/Own", SuperName: "apple/uikit/UIViewController", NativeClassName: "Own", Library: "AcmeKit"},
		&models.ClassRecord{Name: "com/acme/Bare", SuperName: "com/external/Missing", NativeClassName: "Bare"},
	)

	tests := []struct {
		class    string
		expected []string
	}{
		{"com/acme/Map", []string{"UIKit", "MapKit"}},
		{"com/acme/Own", []string{"AcmeKit"}},
		{"com/acme/Bare", nil},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			rc, _ := reg.Get(tt.class)
			assert.Equal(t, tt.expected, reg.Libraries(rc))
		})
	}
}

func TestRegistry_LibrariesDeduplicates(t *testing.T) {
	reg := newRegistry(&models.ClassRecord{
		Name:            "com/acme/Table",
		SuperName:       "apple/uikit/UIViewController",
		SuperInterfaces: []string{"apple/uikit/protocol/UITableViewDelegate"},
	})
	rc, _ := reg.Get("com/acme/Table")
	assert.Equal(t, []string{"UIKit"}, reg.Libraries(rc))
}

func TestRegistry_LibrariesSurvivesSuperLoop(t *testing.T) {
	reg := New()
	reg.Add(&models.ClassRecord{Name: "a", SuperName: "b"})
	reg.Add(&models.ClassRecord{Name: "b", SuperName: "a"})
	rc, _ := reg.Get("a")
	assert.Empty(t, reg.Libraries(rc))
}

func TestRegistry_Protocols(t *testing.T) {
	reg := newRegistry(
		&models.ClassRecord{Name: "com/acme/NotAProtocol", Library: "AcmeKit"},
		&models.ClassRecord{
			Name:      "com/acme/Main",
			SuperName: "apple/uikit/UIViewController",
			SuperInterfaces: []string{
				"apple/uikit/protocol/UITableViewDelegate",
				"com/acme/NotAProtocol",
				"com/external/Unknown",
				"apple/mapkit/protocol/MKMapViewDelegate",
				"apple/uikit/protocol/UITableViewDelegate",
			},
		},
	)

	rc, _ := reg.Get("com/acme/Main")
	assert.Equal(t, []string{"UITableViewDelegate", "MKMapViewDelegateSource"}, reg.Protocols(rc))
}
