package main

import (
	"context"
	"fmt"
	"log"

	"github.com/lexgraph/lexgraph"
	"github.com/lexgraph/lexgraph/helper"
	"github.com/lexgraph/lexgraph/model"
)

const motionContent = `IN THE UNITED STATES DISTRICT COURT

Case No. 2:24-cv-01234

MOTION TO DISMISS

The Motion was filed on March 3, 2024 by John Smith of Jackson Associates LLC.
As set out in the Smith Affidavit, service was made at 123 Main Street.
Response due by March 20, 2024. The opposing party must respond within 21 days.
A hearing is scheduled for April 10, 2024 in courtroom 5.
Damages of $1,250,000.00 are sought.`

const affidavitContent = `AFFIDAVIT OF JOHN SMITH

Case No. 2:24-cv-01234

I, John Smith, declare under penalty of perjury that the facts stated herein
are true. This affidavit was executed on February 28, 2024 in support of the
Motion to Dismiss.`

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "lexgraph_test",
		Username: "postgres",
		Password: "postgres",
		Schema:   "public",
	}

	lg, err := lexgraph.NewLexGraph(dbConfig, 384)
	if err != nil {
		log.Fatalf("Failed to create lexgraph: %v", err)
	}
	defer lg.Close()

	ctx := context.Background()

	// Ingest the affidavit first so the motion can reference it by name
	affidavit := &model.Document{
		Name:     "Smith Affidavit",
		Source:   "basic_example",
		Content:  affidavitContent,
		Metadata: model.Metadata{"case": "2:24-cv-01234"},
	}
	if err := lg.ProcessDocument(ctx, affidavit); err != nil {
		log.Fatalf("Failed to process affidavit: %v", err)
	}

	motion := &model.Document{
		Name:     "Motion to Dismiss",
		Source:   "basic_example",
		Content:  motionContent,
		Metadata: model.Metadata{"case": "2:24-cv-01234"},
	}
	if err := lg.ProcessDocument(ctx, motion); err != nil {
		log.Fatalf("Failed to process motion: %v", err)
	}

	// Entities found in the motion
	entities, err := lg.Entities.SelectEntitiesByDocument(motion.ID)
	if err != nil {
		log.Fatalf("Failed to select entities: %v", err)
	}
	fmt.Printf("Entities in %q:\n", motion.Name)
	for _, entity := range entities {
		fmt.Printf("  %-14s %-28s importance %d\n", entity.Type, entity.Name, entity.Importance)
	}

	// Timeline of the motion
	events, err := lg.Events.SelectEventsByDocument(motion.ID)
	if err != nil {
		log.Fatalf("Failed to select timeline: %v", err)
	}
	fmt.Printf("\nTimeline of %q:\n", motion.Name)
	for _, event := range events {
		fmt.Printf("  %s %-12s %s\n", event.Date.Format("2006-01-02"), event.EventType, event.Description)
	}

	// Upcoming deadlines
	deadlines, err := lg.Deadlines.SelectDeadlinesByDocument(motion.ID)
	if err != nil {
		log.Fatalf("Failed to select deadlines: %v", err)
	}
	fmt.Printf("\nDeadlines in %q:\n", motion.Name)
	for _, deadline := range deadlines {
		fmt.Printf("  %s response_required=%t type=%s\n",
			deadline.DeadlineDate.Format("2006-01-02"), deadline.ResponseRequired, deadline.Type)
	}

	// Relationship views: the motion cites the affidavit by name
	related, err := lg.RelatedDocuments(ctx, motion.ID)
	if err != nil {
		log.Fatalf("Failed to query related documents: %v", err)
	}
	fmt.Printf("\n%q references %d document(s), is referenced by %d, shares entities with %d\n",
		motion.Name, len(related.References), len(related.ReferencedBy), len(related.SharedEntities))
}
