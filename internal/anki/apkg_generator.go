package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// APKGGenerator creates Anki package files (.apkg): a zip containing the
// collection SQLite database, a media mapping file, and the media files
// referenced by the cards.
type APKGGenerator struct {
	deckName     string
	soundsDir    string
	imagesDir    string
	deckID       int64
	modelID      int64
	cards        []Card
	mediaFiles   map[string]int // original filename -> media number
	mediaCounter int
}

// NewAPKGGenerator creates an APKG generator. soundsDir and imagesDir are
// the directories holding the media files the cards reference.
func NewAPKGGenerator(deckName, soundsDir, imagesDir string) *APKGGenerator {
	// Timestamp-derived IDs keep repeated exports distinct for Anki
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName:   deckName,
		soundsDir:  soundsDir,
		imagesDir:  imagesDir,
		deckID:     now,
		modelID:    now + 1,
		cards:      make([]Card, 0),
		mediaFiles: make(map[string]int),
	}
}

// AddCard adds a card to the package.
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG creates the .apkg file at outputPath.
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "ankivocab_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media must be collected first so note fields can reference it
	if err := g.collectMediaFiles(tempDir); err != nil {
		return fmt.Errorf("failed to collect media files: %w", err)
	}

	if err := g.writeMediaMapping(tempDir); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// SoundFileName extracts the media file name from a "[sound:x]" field.
func SoundFileName(field string) string {
	if !strings.HasPrefix(field, "[sound:") || !strings.HasSuffix(field, "]") {
		return ""
	}
	return field[len("[sound:") : len(field)-1]
}

// ImageFileName extracts the media file name from an `<img src="x">` field.
func ImageFileName(field string) string {
	if !strings.HasPrefix(field, `<img src="`) || !strings.HasSuffix(field, `">`) {
		return ""
	}
	return field[len(`<img src="`) : len(field)-len(`">`)]
}

// collectMediaFiles copies every referenced media file into tempDir under
// its numeric package name.
func (g *APKGGenerator) collectMediaFiles(tempDir string) error {
	for _, card := range g.cards {
		if name := SoundFileName(card.Sound); name != "" {
			if err := g.addMediaFile(tempDir, filepath.Join(g.soundsDir, name), name); err != nil {
				return err
			}
		}
		if name := ImageFileName(card.Image); name != "" {
			if err := g.addMediaFile(tempDir, filepath.Join(g.imagesDir, name), name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *APKGGenerator) addMediaFile(tempDir, sourcePath, name string) error {
	if _, exists := g.mediaFiles[name]; exists {
		return nil
	}
	if _, err := os.Stat(sourcePath); err != nil {
		// Referenced but missing media degrades to a dangling reference,
		// same as a failed download would
		fmt.Fprintf(os.Stderr, "Warning: media file not found, not bundled: %s\n", sourcePath)
		return nil
	}

	targetPath := filepath.Join(tempDir, fmt.Sprintf("%d", g.mediaCounter))
	if err := copyFile(sourcePath, targetPath); err != nil {
		return fmt.Errorf("failed to copy media file %s: %w", sourcePath, err)
	}
	g.mediaFiles[name] = g.mediaCounter
	g.mediaCounter++
	return nil
}

// writeMediaMapping creates the "media" JSON file mapping package numbers
// back to file names.
func (g *APKGGenerator) writeMediaMapping(tempDir string) error {
	mapping := make(map[string]string)
	for filename, num := range g.mediaFiles {
		mapping[fmt.Sprintf("%d", num)] = filename
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := g.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the Anki collection schema (version 11).
func (g *APKGGenerator) createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	decks := map[string]interface{}{
		"1": deckConfig(1, "Default", "", now),
		fmt.Sprintf("%d", g.deckID): deckConfig(g.deckID, g.deckName,
			"English vocabulary cards created by ankivocab", now),
	}
	decksJSON, _ := json.Marshal(decks)

	models := map[string]interface{}{
		fmt.Sprintf("%d", g.modelID): g.noteTypeConfig(),
	}
	modelsJSON, _ := json.Marshal(models)

	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      fmt.Sprintf("%d", g.modelID),
		"dayLearnFirst": false,
	}
	confJSON, _ := json.Marshal(conf)

	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}
	dconfJSON, _ := json.Marshal(dconf)

	query := `INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(query,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}", // tags
	)
	return err
}

func deckConfig(id int64, name, desc string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              now,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

// noteTypeConfig builds the note type holding the nine card fields, with a
// recognition template (translation + image in front) and a recall template
// (masked keyword in front).
func (g *APKGGenerator) noteTypeConfig() map[string]interface{} {
	fieldNames := Header

	flds := make([]map[string]interface{}, 0, len(fieldNames))
	for ord, name := range fieldNames {
		size := 20
		if name == "Example" || name == "Explanation" {
			size = 16
		}
		flds = append(flds, map[string]interface{}{
			"name":   name,
			"ord":    ord,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   size,
			"media":  []string{},
		})
	}

	return map[string]interface{}{
		"id":    g.modelID,
		"name":  "Vocabulary from ankivocab",
		"type":  0,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   g.deckID,
		"req":   [][]interface{}{{0, "all", []int{2}}, {1, "all", []int{3}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls": []map[string]interface{}{
			{
				"name":  "Recognition",
				"ord":   0,
				"qfmt":  recognitionFrontTemplate,
				"afmt":  answerTemplate,
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
			{
				"name":  "Recall",
				"ord":   1,
				"qfmt":  recallFrontTemplate,
				"afmt":  answerTemplate,
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": cardCSS,
	}
}

const recognitionFrontTemplate = `<div class="front">
{{#Image}}
<div class="image-container">
{{Image}}
</div>
{{/Image}}
<div class="vietnamese">{{Vietnamese}}</div>
<div class="suggestion">{{Suggestion}}</div>
</div>`

const recallFrontTemplate = `<div class="front">
<div class="suggestion">{{Suggestion}}</div>
{{#Transcription}}
<div class="transcription">{{Transcription}}</div>
{{/Transcription}}
</div>`

const answerTemplate = `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="keyword">{{Keyword}}</div>
{{#Transcription}}
<div class="transcription">{{Transcription}}</div>
{{/Transcription}}
{{#Sound}}
<div class="audio">{{Sound}}</div>
{{/Sound}}
{{#Explanation}}
<div class="explanation">{{Explanation}}</div>
{{/Explanation}}
{{#Example}}
<div class="example">{{Example}}</div>
{{/Example}}
</div>`

const cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.front, .back {
  padding: 20px;
}

.image-container {
  margin: 20px auto;
  max-width: 400px;
}

.image-container img {
  max-width: 100%;
  height: auto;
  border-radius: 8px;
  box-shadow: 0 2px 8px rgba(0,0,0,0.1);
}

.keyword {
  font-size: 32px;
  font-weight: bold;
  color: #2c3e50;
  margin: 20px 0;
}

.vietnamese {
  font-size: 28px;
  font-weight: bold;
  color: #c0392b;
  margin: 20px 0;
}

.suggestion {
  font-size: 24px;
  letter-spacing: 2px;
  color: #7f8c8d;
}

.transcription {
  font-size: 18px;
  color: #7f8c8d;
}

.explanation, .example {
  font-size: 16px;
  color: #34495e;
  margin-top: 15px;
  text-align: left;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`

func (g *APKGGenerator) insertNotesAndCards(db *sql.DB) error {
	now := time.Now()

	for i, card := range g.cards {
		// Leave ID space for the two cards of each note
		noteID := now.UnixMilli() + int64(i*3)
		recognitionID := noteID + 1
		recallID := noteID + 2

		fields := strings.Join([]string{
			fmt.Sprintf("%d", card.No),
			card.Image,
			card.Vietnamese,
			card.Suggestion,
			card.Keyword,
			card.Transcription,
			card.Explanation,
			card.Sound,
			card.Example,
		}, "\x1f")

		guid := fmt.Sprintf("av_%d_%s", now.Unix(), card.Keyword)

		noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := db.Exec(noteQuery,
			noteID,       // id
			guid,         // guid
			g.modelID,    // mid
			now.Unix(),   // mod
			-1,           // usn
			"",           // tags
			fields,       // flds
			card.Keyword, // sfld (sort field)
			0,            // csum
			0,            // flags
			"",           // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for ord, cardID := range []int64{recognitionID, recallID} {
			_, err = db.Exec(cardQuery,
				cardID,              // id
				noteID,              // nid
				g.deckID,            // did
				ord,                 // ord (template index)
				now.Unix(),          // mod
				-1,                  // usn
				0,                   // type (0=new)
				0,                   // queue (0=new)
				noteID+int64(ord),   // due (position for new cards)
				0,                   // ivl
				0,                   // factor
				0,                   // reps
				0,                   // lapses
				0,                   // left
				0,                   // odue
				0,                   // odid
				0,                   // flags
				"",                  // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}
		}
	}

	return nil
}

func (g *APKGGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	defer archive.Close()

	return filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
