package artifact

import "strings"

// The generated game must carry a minimal house style regardless of what the
// model produced: a username field persisted to localStorage, a level-up
// popup, and the styles both need. Enhance injects these into the file set
// before it is written. It only adds content; model output is never removed.

const usernameSection = `
    <!-- Username Section -->
    <div class="username-section">
        <div class="username-container">
            <label for="username">Player Name:</label>
            <input type="text" id="username" placeholder="Enter your name" maxlength="20">
            <button onclick="saveUsername()">Save</button>
            <span id="currentUser" class="current-user"></span>
        </div>
    </div>
`

const usernameScript = `
<script>
// Username management
function saveUsername() {
    const username = document.getElementById('username').value.trim();
    if (username) {
        localStorage.setItem('gameUsername', username);
        document.getElementById('currentUser').innerHTML = 'Playing as: <strong>' + username + '</strong>';
        document.getElementById('username').value = '';
    }
}

// Load username on page load
window.addEventListener('load', function() {
    const savedUsername = localStorage.getItem('gameUsername');
    if (savedUsername) {
        document.getElementById('currentUser').innerHTML = 'Playing as: <strong>' + savedUsername + '</strong>';
    }
});
</script>
`

const levelPopupScript = `
// Level up popup
function showLevelUp() {
    const level = game.level;
    const popup = document.createElement('div');
    popup.className = 'level-popup';
    popup.innerHTML = '<div class="popup-content">' +
        '<div class="popup-icon">⭐</div>' +
        '<div class="popup-text">Level ' + level + '!</div>' +
        '</div>';
    document.body.appendChild(popup);

    setTimeout(() => {
        popup.classList.add('fade-out');
        setTimeout(() => popup.remove(), 500);
    }, 1500);
}

// Route the game's own level-up hook through the popup when it has one.
if (typeof checkLevelUp === 'function') {
    const originalLevelUp = checkLevelUp;
    checkLevelUp = function() {
        originalLevelUp();
        showLevelUp();
    };
}
`

const popupStyles = `
/* Level Popup Styles */
.level-popup {
    position: fixed;
    top: 0;
    left: 0;
    width: 100%;
    height: 100%;
    display: flex;
    justify-content: center;
    align-items: center;
    pointer-events: none;
    z-index: 9999;
    animation: popupAppear 0.3s ease-out;
}

.popup-content {
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    color: white;
    padding: 30px 60px;
    border-radius: 20px;
    box-shadow: 0 10px 30px rgba(0,0,0,0.3);
    text-align: center;
    transform: scale(0);
    animation: popupScale 0.3s ease-out forwards;
}

.popup-icon {
    font-size: 48px;
    margin-bottom: 10px;
}

.popup-text {
    font-size: 36px;
    font-weight: bold;
    text-shadow: 2px 2px 4px rgba(0,0,0,0.3);
}

.level-popup.fade-out {
    animation: fadeOut 0.5s ease-out forwards;
}

@keyframes popupAppear {
    from { opacity: 0; }
    to { opacity: 1; }
}

@keyframes popupScale {
    from { transform: scale(0); }
    to { transform: scale(1); }
}

@keyframes fadeOut {
    from { opacity: 1; }
    to { opacity: 0; }
}

/* Username Section Styles */
.username-section {
    background: linear-gradient(135deg, #4facfe 0%, #00f2fe 100%);
    padding: 15px;
    border-radius: 10px;
    margin-bottom: 20px;
    color: white;
}

.username-container {
    display: flex;
    gap: 10px;
    align-items: center;
    flex-wrap: wrap;
    justify-content: center;
}

.username-container input {
    padding: 8px 15px;
    border: none;
    border-radius: 5px;
    font-size: 14px;
    flex: 1;
    min-width: 200px;
}

.username-container button {
    padding: 8px 20px;
    background: #ff6b6b;
    color: white;
    border: none;
    border-radius: 5px;
    cursor: pointer;
    font-weight: bold;
}

.current-user {
    font-size: 16px;
    padding: 5px 15px;
    background: rgba(255,255,255,0.2);
    border-radius: 20px;
}
`

// Enhance injects the house-style features into the file set: the username
// capture UI and its localStorage script into the markup, the level-up popup
// helper into the script, and the supporting styles into the stylesheet.
// Pieces the model already produced are left alone.
func Enhance(fs *FileSet) {
	if !strings.Contains(fs.Markup, `id="username"`) {
		if strings.Contains(fs.Markup, "<body>") {
			fs.Markup = strings.Replace(fs.Markup, "<body>", "<body>\n"+usernameSection, 1)
		} else {
			fs.Markup = usernameSection + fs.Markup
		}
	}
	// The section's Save button references saveUsername, so the guard must
	// key on the function definition, not the name.
	if !strings.Contains(fs.Markup, "function saveUsername") {
		if strings.Contains(fs.Markup, "</body>") {
			fs.Markup = strings.Replace(fs.Markup, "</body>", usernameScript+"\n</body>", 1)
		} else {
			fs.Markup = fs.Markup + usernameScript
		}
	}

	if !strings.Contains(fs.Script, "showLevelUp") {
		fs.Script = levelPopupScript + "\n" + fs.Script
	}

	if !strings.Contains(fs.Style, ".level-popup") {
		fs.Style = fs.Style + "\n" + popupStyles
	}
}
