package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjcastro/gradesource-be/internal/services"
)

func TestRegisterClass(t *testing.T) {
	svc := services.NewClassService(newTestDB(t))

	class, valid, err := svc.RegisterClass(context.Background(), "http://x.com/a/index.html")
	require.NoError(t, err)
	assert.True(t, valid)
	assert.NotEmpty(t, class.ID)
	assert.Equal(t, "http://x.com/a/index.html", class.URL)
}

func TestRegisterClassEmptyURL(t *testing.T) {
	svc := services.NewClassService(newTestDB(t))

	_, _, err := svc.RegisterClass(context.Background(), "")
	assert.ErrorIs(t, err, services.ErrEmptyURL)

	classes, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, classes)
}

// A URL that fails validation is still registered; the verdict only feeds
// the frontend hint.
func TestRegisterClassInvalidURLStillAccepted(t *testing.T) {
	svc := services.NewClassService(newTestDB(t))

	class, valid, err := svc.RegisterClass(context.Background(), "http://x.com/a/grades.html")
	require.NoError(t, err)
	assert.False(t, valid)
	assert.NotEmpty(t, class.ID)
}

func TestRegisterClassDuplicate(t *testing.T) {
	svc := services.NewClassService(newTestDB(t))

	_, _, err := svc.RegisterClass(context.Background(), "http://x.com/a/index.html")
	require.NoError(t, err)

	_, _, err = svc.RegisterClass(context.Background(), "http://x.com/a/index.html")
	assert.ErrorIs(t, err, services.ErrDuplicateClass)

	// The failed attempt wrote nothing.
	classes, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}

func TestConcurrentRegistrationsOneWinner(t *testing.T) {
	svc := services.NewClassService(newTestDB(t))

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.RegisterClass(context.Background(), "http://x.com/a/index.html")
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, services.ErrDuplicateClass):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)
}

func TestListClasses(t *testing.T) {
	svc := services.NewClassService(newTestDB(t))

	urls := []string{
		"http://x.com/a/index.html",
		"http://x.com/b/index.html",
		"http://x.com/c/index.html",
	}
	for _, u := range urls {
		_, _, err := svc.RegisterClass(context.Background(), u)
		require.NoError(t, err)
	}

	classes, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 3)

	seen := make(map[string]bool, len(classes))
	for _, c := range classes {
		seen[c.URL] = true
	}
	for _, u := range urls {
		assert.True(t, seen[u], "missing %s", u)
	}
}
