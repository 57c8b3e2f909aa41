package menu

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"brewline/internal/apperr"
	"brewline/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	key         string
	contentType string
	body        string
	err         error
}

func (f *fakeStorage) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(body)
	f.key, f.contentType, f.body = key, contentType, string(b)
	return "https://cdn.example.com/" + key, nil
}

func newTestService(storage Storage) (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	return NewService(repo, storage, logging.Discard()), repo
}

func latteInput() ItemInput {
	return ItemInput{
		Name:       "  Caramel Latte ",
		PriceCents: 495,
		Category:   "Lattes",
		Options: []OptionGroup{
			{Name: "Size", Required: true, Choices: []OptionChoice{{Label: "Tall"}, {Label: "Grande", PriceCents: 50}}},
		},
	}
}

func TestCreate_NormalizesAndStores(t *testing.T) {
	service, repo := newTestService(nil)
	ctx := context.Background()

	empty := "   "
	in := latteInput()
	in.Description = &empty

	item, err := service.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Caramel Latte", item.Name)
	assert.Nil(t, item.Description)

	stored, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, stored.Options, 1)
	assert.Equal(t, int64(50), stored.Options[0].Choices[1].PriceCents)
}

func TestCreate_RejectsInvalidOptions(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	tests := map[string]func(in *ItemInput){
		"blank name":       func(in *ItemInput) { in.Name = " " },
		"negative price":   func(in *ItemInput) { in.PriceCents = -1 },
		"duplicate group":  func(in *ItemInput) { in.Options = append(in.Options, in.Options[0]) },
		"no choices":       func(in *ItemInput) { in.Options[0].Choices = nil },
		"blank label":      func(in *ItemInput) { in.Options[0].Choices[0].Label = "" },
		"duplicate label":  func(in *ItemInput) { in.Options[0].Choices[1].Label = "Tall" },
		"negative delta":   func(in *ItemInput) { in.Options[0].Choices[1].PriceCents = -5 },
		"missing category": func(in *ItemInput) { in.Category = "" },
		"long description": func(in *ItemInput) { d := strings.Repeat("x", 501); in.Description = &d },
		"blank group name": func(in *ItemInput) { in.Options[0].Name = "  " },
		"long name":        func(in *ItemInput) { in.Name = strings.Repeat("x", 121) },
		"price too large":  func(in *ItemInput) { in.PriceCents = math.MaxInt32 + 1 },
		"delta too large":  func(in *ItemInput) { in.Options[0].Choices[1].PriceCents = math.MaxInt32 + 1 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := latteInput()
			mutate(&in)
			_, err := service.Create(ctx, in)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestCreate_AcceptsLargestPrice(t *testing.T) {
	service, _ := newTestService(nil)

	in := latteInput()
	in.PriceCents = math.MaxInt32
	in.Options[0].Choices[1].PriceCents = math.MaxInt32

	_, err := service.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	_, err := service.Update(ctx, 99, latteInput())
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, service.Delete(ctx, 99), ErrItemNotFound)
}

func TestUpdate_ReplacesOptions(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	item, err := service.Create(ctx, latteInput())
	require.NoError(t, err)

	in := latteInput()
	in.PriceCents = 550
	in.Options = nil
	_, err = service.Update(ctx, item.ID, in)
	require.NoError(t, err)

	got, err := service.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(550), got.PriceCents)
	assert.Empty(t, got.Options)
}

func TestList_OrderedByCategoryThenName(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	for _, in := range []ItemInput{
		{Name: "Mocha", Category: "Lattes", PriceCents: 500},
		{Name: "Iced Tea", Category: "Cold", PriceCents: 300},
		{Name: "Americano", Category: "Lattes", PriceCents: 350},
	} {
		_, err := service.Create(ctx, in)
		require.NoError(t, err)
	}

	items, err := service.List(ctx)
	require.NoError(t, err)
	names := []string{items[0].Name, items[1].Name, items[2].Name}
	assert.Equal(t, []string{"Iced Tea", "Americano", "Mocha"}, names)
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	service, repo := newTestService(nil)
	ctx := context.Background()

	require.NoError(t, service.Seed(ctx))
	n, _ := repo.Count(ctx)
	assert.Equal(t, 3, n)

	require.NoError(t, service.Seed(ctx))
	n, _ = repo.Count(ctx)
	assert.Equal(t, 3, n)
}

func TestClear(t *testing.T) {
	service, repo := newTestService(nil)
	ctx := context.Background()

	require.NoError(t, service.Seed(ctx))
	require.NoError(t, service.Clear(ctx))
	n, _ := repo.Count(ctx)
	assert.Zero(t, n)
}

func TestUploadImage(t *testing.T) {
	storage := &fakeStorage{}
	service, _ := newTestService(storage)
	ctx := context.Background()

	item, err := service.Create(ctx, latteInput())
	require.NoError(t, err)

	updated, err := service.UploadImage(ctx, item.ID, strings.NewReader("bytes"), "Latte.PNG")
	require.NoError(t, err)

	require.NotNil(t, updated.ImageURL)
	assert.True(t, strings.HasPrefix(storage.key, "menu/1/"))
	assert.True(t, strings.HasSuffix(storage.key, ".png"))
	assert.Equal(t, "image/png", storage.contentType)
	assert.Equal(t, "https://cdn.example.com/"+storage.key, *updated.ImageURL)
}

func TestUploadImage_Errors(t *testing.T) {
	ctx := context.Background()

	noStore, _ := newTestService(nil)
	_, err := noStore.UploadImage(ctx, 1, strings.NewReader(""), "a.png")
	assert.True(t, apperr.Is(err, apperr.KindUnavailable))

	service, _ := newTestService(&fakeStorage{})
	_, err = service.UploadImage(ctx, 1, strings.NewReader(""), "menu.pdf")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = service.UploadImage(ctx, 1, strings.NewReader(""), "a.jpg")
	assert.ErrorIs(t, err, ErrItemNotFound)

	failing, _ := newTestService(&fakeStorage{err: errors.New("bucket gone")})
	item, err := failing.Create(ctx, latteInput())
	require.NoError(t, err)
	_, err = failing.UploadImage(ctx, item.ID, strings.NewReader(""), "a.jpg")
	assert.Error(t, err)
}

func TestChoiceLookup(t *testing.T) {
	g := latteInput().Options[0]

	c, ok := g.Choice("Grande")
	require.True(t, ok)
	assert.Equal(t, int64(50), c.PriceCents)

	_, ok = g.Choice("grande")
	assert.False(t, ok, "label lookup is case-sensitive")
	_, ok = g.Choice("Huge")
	assert.False(t, ok)
}
