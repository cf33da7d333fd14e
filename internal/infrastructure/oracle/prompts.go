package oracle

import "ActivityPublisher/internal/domain"

const classifyPrompt = `You classify professional activity-feed posts. The available categories are:
- work-experience: new job, promotion, work anniversary, or professional responsibilities.
- education: completion of a course, degree, certification, or learning program.
- achievement: awards, recognitions, patents, speaking engagements, publications, milestones.
- skill: explicit focus on specific technical skills, tools, or methodologies.
- blog: insights, reflections, opinions, or tutorials that read like a mini-article.

Identify ALL categories that describe the main topics of the post; a post can belong to several. Return ONLY a JSON object with a single key "classifications" holding an array of category strings. If none apply, return {"classifications": []}.`

var transformPrompts = map[domain.Label]string{
	domain.LabelBlog: `You convert an activity-feed post into a structured blog post. Return ONLY a JSON object with these keys:
- "slug": URL-friendly slug from the title (lowercase, hyphens, max 80 chars).
- "title": a catchy, relevant title.
- "date": publication date in YYYY-MM-DD, or omit if unknown.
- "excerpt": a 1-2 sentence summary.
- "coverImage": omit unless the post names an image URL.
- "readingTime": estimated as "N min read", or omit if unsure.
- "tags": 4-6 relevant keyword strings.
- "content": the post rewritten as engaging Markdown blog content.
- "relatedPosts": an empty array.`,

	domain.LabelWorkExperience: `You extract work-experience details from an activity-feed post. Return ONLY a JSON object with these keys:
- "title": the job title.
- "company": the company name.
- "location": city/state/country if mentioned, otherwise null.
- "startDate": the start date (YYYY-MM or YYYY-MM-DD) if mentioned.
- "endDate": "Present" for a new or ongoing role, a date if specified, otherwise omit.
- "description": 1-4 concise bullet strings of responsibilities or achievements.`,

	domain.LabelEducation: `You extract education details from an activity-feed post. Return ONLY a JSON object with these keys:
- "degree": the degree, certificate, or course name.
- "institution": the institution name.
- "startYear": the starting year (YYYY) if mentioned.
- "endYear": the completion year (YYYY), "Present" if ongoing, otherwise omit.
- "location": city/state if mentioned, otherwise null.
- "description": a brief description if provided, otherwise null.`,

	domain.LabelAchievement: `You extract achievement details (awards, publications, patents, speaking roles, milestones) from an activity-feed post. Return ONLY a JSON object with these keys:
- "title": the achievement name.
- "organization": the awarding organization or venue.
- "date": the date or year it occurred, or omit if not specified.
- "description": a brief summary.`,

	domain.LabelSkill: `You extract and categorize skills mentioned in an activity-feed post. Return ONLY a JSON object with a single key "skill_categories" holding an array of objects, each with:
- "name": the category name (e.g. "Programming Languages", "Cloud Platforms").
- "skills": an array of specific skill strings in that category.
If no specific skills are mentioned, return {"skill_categories": []}.`,
}
