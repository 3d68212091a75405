package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/kete-vault/kete/internal/audit"
	"github.com/kete-vault/kete/internal/configs"
	kerrors "github.com/kete-vault/kete/internal/errors"
	"github.com/kete-vault/kete/internal/ui"
	"github.com/kete-vault/kete/internal/vault"

	"github.com/common-nighthawk/go-figure"
)

// session holds the unlocked collaborators for one interactive run.
// The cipher inside the manager is the only place the decoded master key
// lives; nothing here is global.
type session struct {
	manager *vault.Manager
	files   *vault.FileStore
	reader  *bufio.Reader
}

// runSession authenticates the user and drives the interactive menu.
// It returns a non-nil error exactly when the process should exit with
// status 1: failed authentication, unusable config, or a broken store.
func runSession() error {
	exists, err := configs.MasterConfigExists()
	if err != nil {
		return Logger.ErrorfAndReturn("failed to check for master config: %v", err)
	}

	if !exists {
		Logger.Infof("No master config found, running setup first")
		if _, err := RunInit(false); err != nil {
			return err
		}
		fmt.Println()
	}

	config, err := configs.LoadMasterConfig()
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " Could not load the master config")
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("kete init --force") + " to set up again")
		return err
	}

	input, err := promptPassword("Master password: ")
	if err != nil {
		return err
	}
	if err := config.Authenticate(input); err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " Master password does not match")
		return err
	}

	key, err := config.UnlockKey()
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " The configured encryption key is unusable")
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("kete init --force") + " to set up again")
		return err
	}

	cipher, err := vault.NewCipher(key, vault.Algorithm(config.Algorithm))
	if err != nil {
		return Logger.ErrorfAndReturn("failed to initialize cipher: %v", err)
	}

	files := vault.DefaultFileStore()
	s := &session{
		manager: vault.NewManager(cipher, files),
		files:   files,
		reader:  bufio.NewReader(os.Stdin),
	}

	figure.NewColorFigure("Kete", "alligator2", "green", true).Print()
	fmt.Println(ui.Muted.Sprint("store: " + configs.KeteSettings.StorePath))

	// One bounded menu, looped iteratively. Sessions can run for a long
	// time, so no recursion here.
	for {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("1.") + " List entries")
		fmt.Println(ui.Info.Sprint("2.") + " Generate a new credential")
		fmt.Println(ui.Info.Sprint("3.") + " Retrieve a credential")
		fmt.Println(ui.Info.Sprint("4.") + " Rotate a credential")
		fmt.Println(ui.Info.Sprint("5.") + " Delete a credential")
		fmt.Println(ui.Info.Sprint("6.") + " History")
		fmt.Println(ui.Info.Sprint("7.") + " Exit")

		choice, err := promptLine(s.reader, "Choice", "")
		if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "1":
			actionErr = s.list()
		case "2":
			actionErr = s.generate()
		case "3":
			actionErr = s.retrieve()
		case "4":
			actionErr = s.rotate()
		case "5":
			actionErr = s.delete()
		case "6":
			s.history()
		case "7", "q", "exit":
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println(ui.Warning.Sprint("Invalid choice, please try again."))
		}

		// Action errors that reach here are store-level failures; the
		// session cannot safely continue.
		if actionErr != nil {
			return actionErr
		}
	}
}

// fatal prints a store/session failure and passes the error through so
// the menu loop terminates the session.
func (s *session) fatal(err error) error {
	fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
	if errors.Is(err, kerrors.ErrStoreCorrupt) {
		fmt.Println(ui.Info.Sprint("→") + " The store file cannot be repaired automatically")
	}
	return err
}

func (s *session) list() error {
	store, err := s.files.Load()
	if err != nil {
		return s.fatal(err)
	}

	active := store.ListActive()
	deprecated := store.ListDeprecated()

	if len(active) == 0 && len(deprecated) == 0 {
		fmt.Println(ui.Muted.Sprint("no entries yet"))
		return nil
	}

	if len(active) > 0 {
		fmt.Println(ui.Success.Sprint("Active:"))
		for i, entry := range active {
			fmt.Printf("  %d. %s %s\n", i+1,
				ui.Highlight.Sprint(entry.Name),
				ui.Muted.Sprint("created "+entry.CreatedAt.Format("2006-01-02 15:04")))
		}
	}

	if len(deprecated) > 0 {
		fmt.Println(ui.Deprecated.Sprint("Deprecated:"))
		for _, entry := range deprecated {
			when := ""
			if entry.DeprecatedAt != nil {
				when = entry.DeprecatedAt.Format("2006-01-02 15:04")
			}
			fmt.Printf("  - %s %s\n", entry.Name, ui.Deprecated.Sprint("deprecated "+when))
		}
	}

	return nil
}

func (s *session) generate() error {
	name, err := promptLine(s.reader, "Entry name", "")
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Println(ui.Warning.Sprint("A name is required."))
		return nil
	}

	length := s.promptLength()

	entry, password, err := s.manager.Generate(name, length)
	if err != nil {
		return s.fatal(err)
	}

	audit.Log(audit.Entry{Operation: "generate", Name: name, EntryID: entry.ID})

	fmt.Println(ui.Success.Sprint("✓") + " Stored " + ui.Highlight.Sprint(name))
	fmt.Println("  Password: " + ui.Highlight.Sprint(password))
	return nil
}

func (s *session) retrieve() error {
	entry, ok, err := s.selectForRetrieve()
	if err != nil || !ok {
		return err
	}

	plaintext, err := s.manager.Retrieve(entry.ID)
	switch {
	case err == nil:
		fmt.Println(ui.Success.Sprint("✓") + " " + ui.Highlight.Sprint(entry.Name))
		fmt.Println("  Password: " + ui.Highlight.Sprint(plaintext))
		return nil

	case errors.Is(err, kerrors.ErrIntegrity) || errors.Is(err, kerrors.ErrPayloadFormat):
		// Recoverable at the entry level only. Never silently discard:
		// the user chooses between leaving the entry as-is and replacing it.
		fmt.Println(ui.Error.Sprint("✗") + " Entry " + ui.Highlight.Sprint(entry.Name) + " cannot be decrypted")
		fmt.Println(ui.Muted.Sprint(err.Error()))
		fmt.Println(ui.Warning.Sprint("!") + " Its secret is unrecoverable.")

		// A deprecated entry has no active role to restore; replacing it
		// would create a second active credential under the same name.
		if entry.Deprecated {
			fmt.Println(ui.Muted.Sprint("deprecated entries are kept as history only and are not replaced"))
			return nil
		}

		if !confirm(s.reader, "Delete it and generate a replacement under the same name?") {
			fmt.Println(ui.Muted.Sprint("entry left untouched"))
			return nil
		}

		replacement, password, rerr := s.manager.Replace(entry.ID, vault.DefaultPasswordLength)
		if rerr != nil {
			return s.fatal(rerr)
		}

		audit.Log(audit.Entry{
			Operation:  "replace",
			Name:       replacement.Name,
			EntryID:    replacement.ID,
			ReplacedID: entry.ID,
		})

		fmt.Println(ui.Success.Sprint("✓") + " Replaced " + ui.Highlight.Sprint(replacement.Name))
		fmt.Println("  Password: " + ui.Highlight.Sprint(password))
		return nil

	default:
		return s.fatal(err)
	}
}

func (s *session) rotate() error {
	entry, ok, err := s.selectActive("rotate")
	if err != nil || !ok {
		return err
	}

	if !confirm(s.reader, "Rotate "+entry.Name+"? The current secret is kept as deprecated") {
		fmt.Println(ui.Muted.Sprint("rotation cancelled"))
		return nil
	}

	replacement, password, err := s.manager.Rotate(entry.ID, vault.DefaultPasswordLength)
	if err != nil {
		return s.fatal(err)
	}

	audit.Log(audit.Entry{
		Operation:  "rotate",
		Name:       replacement.Name,
		EntryID:    replacement.ID,
		ReplacedID: entry.ID,
	})

	fmt.Println(ui.Success.Sprint("✓") + " Rotated " + ui.Highlight.Sprint(replacement.Name))
	fmt.Println("  New password: " + ui.Highlight.Sprint(password))
	return nil
}

func (s *session) delete() error {
	name, err := promptLine(s.reader, "Name to delete", "")
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Println(ui.Warning.Sprint("A name is required."))
		return nil
	}

	if !confirm(s.reader, "Delete every entry named "+name+", including deprecated ones?") {
		fmt.Println(ui.Muted.Sprint("deletion cancelled"))
		return nil
	}

	count, err := s.manager.Delete(name)
	if err != nil {
		return s.fatal(err)
	}

	if count == 0 {
		fmt.Println(ui.Muted.Sprint("no entries named " + name))
		return nil
	}

	audit.Log(audit.Entry{Operation: "delete", Name: name, RemovedCount: count})

	fmt.Printf("%s Removed %d %s named %s\n",
		ui.Success.Sprint("✓"), count, pluralEntries(count), ui.Highlight.Sprint(name))
	return nil
}

// selectActive lists the active entries and asks the user to pick one.
// Returns ok=false when there is nothing to pick or the user cancels.
func (s *session) selectActive(verb string) (vault.Entry, bool, error) {
	store, err := s.files.Load()
	if err != nil {
		return vault.Entry{}, false, s.fatal(err)
	}

	active := store.ListActive()
	if len(active) == 0 {
		fmt.Println(ui.Muted.Sprint("no active entries"))
		return vault.Entry{}, false, nil
	}

	return s.selectFrom(active, verb)
}

// selectForRetrieve offers both active and deprecated entries: a rotation
// keeps the old secret around exactly so it can still be looked up.
func (s *session) selectForRetrieve() (vault.Entry, bool, error) {
	store, err := s.files.Load()
	if err != nil {
		return vault.Entry{}, false, s.fatal(err)
	}

	entries := append(store.ListActive(), store.ListDeprecated()...)
	if len(entries) == 0 {
		fmt.Println(ui.Muted.Sprint("no entries yet"))
		return vault.Entry{}, false, nil
	}

	return s.selectFrom(entries, "retrieve")
}

func (s *session) selectFrom(entries []vault.Entry, verb string) (vault.Entry, bool, error) {
	for i, entry := range entries {
		marker := ""
		if entry.Deprecated {
			marker = " " + ui.Deprecated.Sprint("deprecated")
		}
		fmt.Printf("  %d. %s%s\n", i+1, ui.Highlight.Sprint(entry.Name), marker)
	}

	input, err := promptLine(s.reader, "Entry to "+verb+" (0 to cancel)", "")
	if err != nil {
		return vault.Entry{}, false, err
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 0 || n > len(entries) {
		fmt.Println(ui.Warning.Sprint("Invalid selection."))
		return vault.Entry{}, false, nil
	}
	if n == 0 {
		return vault.Entry{}, false, nil
	}

	return entries[n-1], true, nil
}

// history shows the operation trail. The trail is best-effort, so a
// read failure never ends the session.
func (s *session) history() {
	entries, err := audit.ReadEntries()
	if err != nil {
		Logger.Warnf("Failed to read operation history: %v", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println(ui.Muted.Sprint("no history yet"))
		return
	}

	outputLogOneline(entries)
}

// promptLength asks for the password length, defaulting to 12.
func (s *session) promptLength() int {
	input, err := promptLine(s.reader, "Password length", strconv.Itoa(vault.DefaultPasswordLength))
	if err != nil {
		return vault.DefaultPasswordLength
	}

	length, err := strconv.Atoi(input)
	if err != nil {
		fmt.Println(ui.Warning.Sprint("Invalid length, using the default."))
		return vault.DefaultPasswordLength
	}
	if length < vault.MinPasswordLength {
		fmt.Printf("%s Below the minimum of %d, using %d.\n",
			ui.Warning.Sprint("!"), vault.MinPasswordLength, vault.MinPasswordLength)
	}
	return length
}

func pluralEntries(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}
