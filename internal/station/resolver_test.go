package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masapp-backend/internal/models"
)

func intPtr(n int) *int { return &n }

func twoFloorPolicy() *RoutingPolicy {
	return PolicyFromSettings(models.RestaurantSettings{
		DrinkRouting: &models.DrinkRoutingConfig{
			DrinkCategoryID: "cat-drinks",
			Floors: []models.TableRangeRule{
				{Name: "Zemin Kat", StartTable: 1, EndTable: 18, StationID: "icecek-1"},
				{Name: "Üst Kat", StartTable: 19, EndTable: 42, StationID: "icecek-2"},
			},
		},
	})
}

func TestPolicyFromSettings(t *testing.T) {
	t.Run("yapılandırma yoksa nil", func(t *testing.T) {
		assert.Nil(t, PolicyFromSettings(models.RestaurantSettings{}))
	})

	t.Run("geçersiz aralıklar elenir", func(t *testing.T) {
		p := PolicyFromSettings(models.RestaurantSettings{
			DrinkRouting: &models.DrinkRoutingConfig{
				Floors: []models.TableRangeRule{
					{StartTable: 5, EndTable: 3, StationID: "ters"},
					{StartTable: 0, EndTable: 10, StationID: "sifir"},
					{StartTable: 1, EndTable: 10, StationID: "gecerli"},
				},
			},
		})
		require.NotNil(t, p)
		require.Len(t, p.Ranges, 1)
		assert.Equal(t, "gecerli", p.Ranges[0].StationID)
	})

	t.Run("tüm aralıklar geçersizse nil", func(t *testing.T) {
		p := PolicyFromSettings(models.RestaurantSettings{
			DrinkRouting: &models.DrinkRoutingConfig{
				Floors: []models.TableRangeRule{{StartTable: 5, EndTable: 3, StationID: "x"}},
			},
		})
		assert.Nil(t, p)
	})
}

func TestResolveDrinkLabelWithRanges(t *testing.T) {
	policy := twoFloorPolicy()

	t.Run("üst kat masası ikinci istasyona gider", func(t *testing.T) {
		got := Resolve(policy, intPtr(25), Item{KitchenStation: "icecek"})
		assert.Equal(t, "icecek-2", got)
	})

	t.Run("zemin kat masası ilk istasyona gider", func(t *testing.T) {
		got := Resolve(policy, intPtr(10), Item{KitchenStation: "İçecek Barı"})
		assert.Equal(t, "icecek-1", got)
	})

	t.Run("aralık sınırları dahildir", func(t *testing.T) {
		assert.Equal(t, "icecek-1", Resolve(policy, intPtr(18), Item{KitchenStation: "icecek"}))
		assert.Equal(t, "icecek-2", Resolve(policy, intPtr(19), Item{KitchenStation: "icecek"}))
	})

	t.Run("aralık dışı masa ilk aralığa düşer", func(t *testing.T) {
		got := Resolve(policy, intPtr(99), Item{KitchenStation: "drink"})
		assert.Equal(t, "icecek-1", got)
	})

	t.Run("masasız sipariş ilk aralığa düşer", func(t *testing.T) {
		got := Resolve(policy, nil, Item{KitchenStation: "bar"})
		assert.Equal(t, "icecek-1", got)
	})

	t.Run("büyük harfli Türkçe etiket de içecek sayılır", func(t *testing.T) {
		// 'İ' düz ToLower ile "i̇" olur; Türkçe küçültme gerekir
		assert.Equal(t, "icecek-2", Resolve(policy, intPtr(25), Item{KitchenStation: "İÇECEK"}))
		assert.Equal(t, "icecek-2", Resolve(policy, intPtr(25), Item{KitchenStation: "DRINK"}))
	})
}

func TestResolveVerbatimLabel(t *testing.T) {
	policy := twoFloorPolicy()

	t.Run("içecek olmayan etiket olduğu gibi kullanılır", func(t *testing.T) {
		got := Resolve(policy, intPtr(25), Item{KitchenStation: "izgara"})
		assert.Equal(t, "izgara", got)
	})

	t.Run("politika yokken içecek etiketi de olduğu gibi kullanılır", func(t *testing.T) {
		got := Resolve(nil, intPtr(25), Item{KitchenStation: "icecek"})
		assert.Equal(t, "icecek", got)
	})
}

func TestResolveByCategory(t *testing.T) {
	policy := twoFloorPolicy()

	t.Run("etiketsiz içecek kategorisi aralığa göre çözülür", func(t *testing.T) {
		got := Resolve(policy, intPtr(30), Item{CategoryID: "cat-drinks"})
		assert.Equal(t, "icecek-2", got)
	})

	t.Run("etiketsiz diğer kategori boş döner", func(t *testing.T) {
		got := Resolve(policy, intPtr(30), Item{CategoryID: "cat-food"})
		assert.Equal(t, "", got)
	})

	t.Run("etiketsiz ve politikasız boş döner", func(t *testing.T) {
		got := Resolve(nil, intPtr(5), Item{CategoryID: "cat-drinks"})
		assert.Equal(t, "", got)
	})
}

// Çözümleme deterministik ve masa aralıkları üzerinde bölüntü olmalı:
// 1..42 arası her masa için tam olarak bir istasyon çıkar ve aynı girdi
// hep aynı sonucu verir.
func TestResolveDeterministicPartition(t *testing.T) {
	policy := twoFloorPolicy()

	for table := 1; table <= 42; table++ {
		first := Resolve(policy, intPtr(table), Item{KitchenStation: "icecek"})
		require.NotEmpty(t, first, "masa %d istasyonsuz kaldı", table)

		want := "icecek-1"
		if table >= 19 {
			want = "icecek-2"
		}
		assert.Equal(t, want, first, "masa %d", table)

		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Resolve(policy, intPtr(table), Item{KitchenStation: "icecek"}))
		}
	}
}
