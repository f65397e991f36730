package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"dinein/database/dbtest"
	"dinein/logger"
	"dinein/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func ownerOf(f dbtest.Fixture) Actor {
	return Actor{UserID: f.User.ID, Role: model.RoleOwner}
}

func TestMenuService_DeletedCategoryScope(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	svc := NewMenuService(db, &memStore{}, logger.Nop())
	ctx := context.Background()
	owner := ownerOf(f)

	mains, err := svc.CreateCategory(ctx, owner, CategoryInput{RestaurantID: f.Restaurant.ID, Name: "Mains"})
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	drinks, err := svc.CreateCategory(ctx, owner, CategoryInput{RestaurantID: f.Restaurant.ID, Name: "Drinks"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateCategory(ctx, owner, CategoryInput{RestaurantID: f.Restaurant.ID, Name: "Seasonal", Status: string(model.CategoryDisabled)}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteCategory(ctx, owner, drinks.ID); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}

	list, err := svc.ListCategories(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != mains.ID {
		t.Errorf("default list = %+v, want only Mains", list)
	}

	all, err := svc.ListCategories(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("list with disabled = %d, want 2", len(all))
	}
	for _, c := range all {
		if c.Status == model.CategoryDeleted {
			t.Errorf("deleted category %d listed", c.ID)
		}
	}

	got, err := svc.GetCategory(ctx, drinks.ID)
	if err != nil {
		t.Fatalf("GetCategory(deleted) error = %v", err)
	}
	if got.Status != model.CategoryDeleted {
		t.Errorf("status = %s, want Deleted", got.Status)
	}

	rest, err := NewRestaurantService(db, &memStore{}, logger.Nop()).Get(ctx, f.Restaurant.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest.Categories) != 1 || rest.Categories[0].ID != mains.ID {
		t.Errorf("restaurant categories = %+v, want only Mains", rest.Categories)
	}
}

func TestMenuService_ItemsAndSlugs(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	svc := NewMenuService(db, &memStore{}, logger.Nop())
	ctx := context.Background()
	owner := ownerOf(f)

	cat, err := svc.CreateCategory(ctx, owner, CategoryInput{RestaurantID: f.Restaurant.ID, Name: "Mains"})
	if err != nil {
		t.Fatal(err)
	}

	in := ItemInput{MenuCategoryID: cat.ID, Name: "Grilled Chicken", Price: decimal.RequireFromString("12.50")}
	first, err := svc.CreateItem(ctx, owner, in, nil)
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if first.Slug != "grilled-chicken" || !first.SalePrice.Equal(first.Price) {
		t.Errorf("first item = slug %q sale %s", first.Slug, first.SalePrice)
	}

	second, err := svc.CreateItem(ctx, owner, in, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.Slug != "grilled-chicken-2" {
		t.Errorf("derived slug = %q, want grilled-chicken-2", second.Slug)
	}

	in.Slug = "grilled-chicken"
	if _, err := svc.CreateItem(ctx, owner, in, nil); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("explicit taken slug error = %v, want ErrSlugTaken", err)
	}

	in.Slug = ""
	in.Price = decimal.Zero
	if _, err := svc.CreateItem(ctx, owner, in, nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero price error = %v, want ErrInvalidAmount", err)
	}

	stranger := Actor{UserID: f.User.ID + 1000, Role: model.RoleOwner}
	if _, err := svc.CreateItem(ctx, stranger, ItemInput{MenuCategoryID: cat.ID, Name: "X", Price: decimal.NewFromInt(1)}, nil); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger error = %v, want ErrForbidden", err)
	}

	if err := svc.DeleteItem(ctx, owner, second.ID); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	items, err := svc.ListItems(ctx, cat.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != first.ID {
		t.Errorf("items = %+v", items)
	}
}

func TestMenuService_ImportItems(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	svc := NewMenuService(db, &memStore{}, logger.Nop())
	ctx := context.Background()
	owner := ownerOf(f)

	cat, err := svc.CreateCategory(ctx, owner, CategoryInput{RestaurantID: f.Restaurant.ID, Name: "Mains"})
	if err != nil {
		t.Fatal(err)
	}

	xl := excelize.NewFile()
	rows := [][]any{
		{"name", "price", "sale_price", "description", "status"},
		{"Koshary", "6.50", "5.00", "Rice, lentils, pasta", "Available"},
		{"Koshary", "7", "", "Large"},
		{"", "3"},
		{"Molokhia", "abc"},
		{"Fattah", "9", "", "", "Sold out"},
		{"Taameya", "2.25"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := xl.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := xl.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.ImportItems(ctx, owner, cat.ID, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ImportItems() error = %v", err)
	}
	if res.Created != 3 {
		t.Errorf("created = %d, want 3", res.Created)
	}
	wantSkipped := []int{4, 5, 6}
	if len(res.SkippedRows) != len(wantSkipped) {
		t.Fatalf("skipped = %v, want %v", res.SkippedRows, wantSkipped)
	}
	for i := range wantSkipped {
		if res.SkippedRows[i] != wantSkipped[i] {
			t.Errorf("skipped = %v, want %v", res.SkippedRows, wantSkipped)
		}
	}

	items, err := svc.ListItems(ctx, cat.ID)
	if err != nil {
		t.Fatal(err)
	}
	slugs := map[string]bool{}
	for _, it := range items {
		slugs[it.Slug] = true
	}
	for _, want := range []string{"koshary", "koshary-2", "taameya"} {
		if !slugs[want] {
			t.Errorf("missing slug %q in %v", want, slugs)
		}
	}

	empty := excelize.NewFile()
	ebuf, _ := empty.WriteToBuffer()
	if _, err := svc.ImportItems(ctx, owner, cat.ID, bytes.NewReader(ebuf.Bytes())); !errors.Is(err, ErrInvalidSheet) {
		t.Errorf("empty sheet error = %v, want ErrInvalidSheet", err)
	}
}

func TestMenuService_SlugOfDeletedItemStaysTaken(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	svc := NewMenuService(db, &memStore{}, logger.Nop())
	ctx := context.Background()
	owner := ownerOf(f)

	cat, err := svc.CreateCategory(ctx, owner, CategoryInput{RestaurantID: f.Restaurant.ID, Name: "Grill"})
	if err != nil {
		t.Fatal(err)
	}
	in := ItemInput{MenuCategoryID: cat.ID, Name: "Burger", Price: decimal.RequireFromString("8.00")}

	first, err := svc.CreateItem(ctx, owner, in, nil)
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if err := svc.DeleteItem(ctx, owner, first.ID); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}

	again, err := svc.CreateItem(ctx, owner, in, nil)
	if err != nil {
		t.Fatalf("CreateItem() after delete error = %v", err)
	}
	if again.Slug != "burger-2" {
		t.Errorf("slug = %q, want burger-2", again.Slug)
	}

	in.Slug = "burger"
	if _, err := svc.CreateItem(ctx, owner, in, nil); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("explicit slug error = %v, want ErrSlugTaken", err)
	}
}
