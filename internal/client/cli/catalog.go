package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/learnpath/lmscli/internal/client/models"
)

// Courses lists the course catalog. Public screen.
func (a *App) Courses(ctx context.Context) error {
	a.renderSection(ctx, "courses", func() error {
		courses, err := a.catalog.Courses(ctx)
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			printlnFn("No courses published yet.")
			return nil
		}
		for _, c := range courses {
			printlnFn(fmt.Sprintf("%s — %s (%d modules, $%.2f)", c.ID, c.Title, c.ModuleCount, c.Price))
		}
		return nil
	})
	return nil
}

// Modules lists the modules visible without enrollment. Public screen.
func (a *App) Modules(ctx context.Context) error {
	a.renderSection(ctx, "modules", func() error {
		mods, err := a.catalog.PublicModules(ctx)
		if err != nil {
			return err
		}
		if len(mods) == 0 {
			printlnFn("No public modules available.")
			return nil
		}
		for _, m := range mods {
			printlnFn(fmt.Sprintf("%2d. %s", m.Order, m.Title))
		}
		return nil
	})
	return nil
}

// Reviews lists published course reviews. Public screen.
func (a *App) Reviews(ctx context.Context) error {
	a.renderSection(ctx, "reviews", func() error {
		reviews, err := a.catalog.Reviews(ctx)
		if err != nil {
			return err
		}
		if len(reviews) == 0 {
			printlnFn("No reviews yet.")
			return nil
		}
		for _, r := range reviews {
			printlnFn(fmt.Sprintf("%s rated %d/5: %s", r.Author, r.Rating, r.Comment))
		}
		return nil
	})
	return nil
}

// AddReview prompts for a rating and comment and publishes a review.
// Requires a logged-in student.
func (a *App) AddReview(ctx context.Context) error {
	if !a.guard(ctx, accessStudent) {
		return nil
	}

	ratingText, err := getSimpleText(a.reader, "Rating (1-5)", os.Stdout)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(ratingText)
	if err != nil {
		printlnFn("Rating must be a number between 1 and 5.")
		return nil
	}

	comment, err := getMultiline(a.reader, "Your review", os.Stdout)
	if err != nil {
		return err
	}

	in := models.ReviewInput{Rating: rating, Comment: comment}
	if err := a.catalog.PostReview(ctx, in); err != nil {
		if a.failIfUnauthorized(ctx, err) {
			return err
		}
		printlnFn("Could not post the review: " + displayError(err))
		return err
	}
	printlnFn("Thanks, your review is published.")
	return nil
}
