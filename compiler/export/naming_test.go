package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"id", "ID"},
		{"user_id", "UserID"},
		{"order-item", "OrderItem"},
		{"createdAt", "CreatedAt"},
		{"USER_NAME", "UserName"},
		{"api_url", "APIURL"},
		{"3d_model", "X3dModel"},
		{"full name", "FullName"},
		{"", "X"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pascal(tt.in), tt.in)
	}
}

func TestAddAcronym(t *testing.T) {
	assert.Equal(t, "DomaingenTest", pascal("domaingen_test"))
	AddAcronym("domaingen")
	t.Cleanup(func() {
		rulesMu.Lock()
		delete(acronyms, "DOMAINGEN")
		rulesMu.Unlock()
	})
	assert.Equal(t, "DOMAINGENTest", pascal("domaingen_test"))
}

func TestSingularPlural(t *testing.T) {
	assert.Equal(t, "User", singular("users"))
	assert.Equal(t, "OrderItem", singular("order_items"))
	assert.Equal(t, "Category", singular("categories"))
	assert.Equal(t, "User", singular("user"))
	assert.Equal(t, "Users", plural("User"))
	assert.Equal(t, "OrderItems", plural("OrderItem"))
}

func TestSnake(t *testing.T) {
	assert.Equal(t, "users", snake("users"))
	assert.Equal(t, "order_items", snake("Order Items"))
	assert.Equal(t, "a_b", snake("a.b"))
}

func TestPackagePath(t *testing.T) {
	tests := []struct {
		pkg, dir, name string
	}{
		{"com.example.model", "com/example/model", "model"},
		{"model", "model", "model"},
		{"internal/Model", "internal/Model", "model"},
		{" com.example.my_model ", "com/example/my_model", "my_model"},
	}
	for _, tt := range tests {
		dir, name, err := PackagePath(tt.pkg)
		require.NoError(t, err, tt.pkg)
		assert.Equal(t, tt.dir, dir, tt.pkg)
		assert.Equal(t, tt.name, name, tt.pkg)
	}
	for _, pkg := range []string{"", "com..model", "../model", "com.example.type", "com.example.1x", "com.example.-"} {
		_, _, err := PackagePath(pkg)
		assert.Error(t, err, pkg)
	}
}

func TestTableFileName(t *testing.T) {
	tests := []struct {
		table *Table
		want  string
	}{
		{&Table{Name: "users", Entity: "User"}, "users.go"},
		{&Table{Name: "Order Items", Entity: "OrderItem"}, "order_items.go"},
		{&Table{Name: "user_test", Entity: "UserTest"}, "user_test_table.go"},
		{&Table{Name: "logs_windows", Entity: "LogsWindow"}, "logs_windows_table.go"},
		{&Table{Name: "active_linux", Entity: "ActiveLinux", View: true}, "active_linux_view.go"},
		{&Table{Name: "%%", Entity: "X"}, "x.go"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.table.FileName(), tt.table.Name)
	}
}
