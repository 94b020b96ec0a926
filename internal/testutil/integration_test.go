package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListAppsRendering(t *testing.T) {
	bin := BuildBinary(t)
	socket, cleanup := StartTmuxServer(t)
	defer cleanup()

	apps := filepath.Join(t.TempDir(), "applications")
	WriteDesktopFile(t, apps, "htop", "Type=Application", "Name=Htop", "Exec=htop", "Terminal=true")
	WriteDesktopFile(t, apps, "org.gnome.Nautilus",
		"Type=Application", "Name=Files", "Exec=nautilus %U", "Actions=new-window;",
		"", "[Desktop Action new-window]", "Name=New Window", "Exec=nautilus --new-window")
	WriteDesktopFile(t, apps, "hidden", "Type=Application", "Name=Hidden", "Exec=true", "NoDisplay=true")

	scriptDir := t.TempDir()
	scriptPath := filepath.Join(scriptDir, "run.sh")
	script := "#!/bin/sh\n" +
		"\"$PIE_BIN\" -list-apps -desktop-dirs \"$PIE_APPS\" -db \"$PIE_DB\" -log-file \"$PIE_LOG\"\n" +
		"sleep 300\n"
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write launcher script: %v", err)
	}
	session := "listapps"
	cmd := TmuxCommand(socket, "new-session", "-d", "-x", "80", "-y", "24", "-s", session, scriptPath)
	cmd.Env = append(cmd.Env,
		"PIE_BIN="+bin,
		"PIE_APPS="+apps,
		"PIE_DB="+filepath.Join(scriptDir, "config.db"),
		"PIE_LOG="+filepath.Join(scriptDir, "pie.log"),
	)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to launch binary: %v", err)
	}
	if err := TmuxCommand(socket, "has-session", "-t", session).Run(); err != nil {
		t.Skipf("skipping: unable to create tmux session: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	output := WaitForOutput(t, ctx, socket, session+":0.0")
	AssertGolden(t, filepath.Join("capture", "list_apps.txt"), NormalizeCapture(output))
	_ = TmuxCommand(socket, "kill-session", "-t", session).Run()
}
