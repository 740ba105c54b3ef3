package menu

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"masapp-backend/internal/database"
	"masapp-backend/internal/models"
)

// Beklenen sütun düzeni: ÜRÜN ADI | KATEGORİ | FİYAT | İSTASYON | ÇİNCE AD
// İlk satır başlıksa atlanır.

// ImportMenuHandler - Excel dosyasından toplu menü yükler. Var olan
// ürünler ada göre eşleşip güncellenir, yenileri oluşturulur; eksik
// kategoriler otomatik açılır.
func ImportMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurant, err := ResolveRestaurantID(database.DB, c.Params("restaurantId"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Restoran bulunamadı")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası gerekli (form alanı: file)")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		startIndex := 0
		firstCell := ""
		if len(rows[0]) > 0 {
			firstCell = strings.ToUpper(strings.TrimSpace(rows[0][0]))
		}
		if strings.Contains(firstCell, "ÜRÜN") || strings.Contains(firstCell, "PRODUCT") {
			startIndex = 1
			log.Printf("İlk satır başlık satırı olarak algılandı, atlanıyor")
		}

		created, updated, skipped := 0, 0, 0
		categoryCache := make(map[string]string)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			for i := startIndex; i < len(rows); i++ {
				row := rows[i]
				if len(row) < 2 {
					skipped++
					continue
				}

				name := strings.TrimSpace(row[0])
				categoryName := strings.TrimSpace(row[1])
				if name == "" || categoryName == "" {
					skipped++
					continue
				}

				price := 0.0
				if len(row) > 2 {
					priceStr := strings.ReplaceAll(strings.TrimSpace(row[2]), ",", ".")
					if p, err := strconv.ParseFloat(priceStr, 64); err == nil {
						price = p
					}
				}
				station := ""
				if len(row) > 3 {
					station = strings.TrimSpace(row[3])
				}
				chineseName := ""
				if len(row) > 4 {
					chineseName = strings.TrimSpace(row[4])
				}

				categoryID, err := ensureCategory(tx, restaurant.ID, categoryName, categoryCache)
				if err != nil {
					return err
				}

				translations := map[string]models.ItemTranslation{}
				if chineseName != "" {
					translations["zh"] = models.ItemTranslation{Name: chineseName}
				}

				var existing models.MenuItem
				findErr := tx.Where("restaurant_id = ? AND name = ?", restaurant.ID, name).First(&existing).Error
				if findErr == nil {
					updates := map[string]any{
						"category_id":     categoryID,
						"price":           price,
						"kitchen_station": station,
						"is_available":    true,
					}
					if chineseName != "" {
						updates["translations"] = datatypes.NewJSONType(translations)
					}
					if err := tx.Model(&existing).Updates(updates).Error; err != nil {
						return err
					}
					updated++
					continue
				}
				if findErr != gorm.ErrRecordNotFound {
					return findErr
				}

				item := models.MenuItem{
					RestaurantID:   restaurant.ID,
					CategoryID:     categoryID,
					Name:           name,
					Price:          price,
					KitchenStation: station,
					Translations:   datatypes.NewJSONType(translations),
					IsAvailable:    true,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				created++
			}
			return nil
		})
		if err != nil {
			log.Printf("Menü import hatası: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Menü içe aktarılamadı")
		}

		log.Printf("Menü import tamamlandı: %d yeni, %d güncellendi, %d atlandı", created, updated, skipped)
		return c.JSON(fiber.Map{
			"created": created,
			"updated": updated,
			"skipped": skipped,
		})
	}
}

func ensureCategory(tx *gorm.DB, restaurantID, name string, cache map[string]string) (string, error) {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id, nil
	}

	var category models.MenuCategory
	err := tx.Where("restaurant_id = ? AND LOWER(name) = ?", restaurantID, key).First(&category).Error
	if err == nil {
		cache[key] = category.ID
		return category.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	category = models.MenuCategory{RestaurantID: restaurantID, Name: name}
	if err := tx.Create(&category).Error; err != nil {
		return "", err
	}
	cache[key] = category.ID
	return category.ID, nil
}
